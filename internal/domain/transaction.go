package domain

import "github.com/shopspring/decimal"

// Source identifies one of the three settlement systems being reconciled.
type Source string

const (
	SourceCBS    Source = "cbs"
	SourceSwitch Source = "switch"
	SourceNPCI   Source = "npci"
)

// SourceOrder is the stable declared ordering of the three systems. Every
// list derived from a record (present sources, absent sources, suggested
// action text) follows this order.
var SourceOrder = []Source{SourceCBS, SourceSwitch, SourceNPCI}

// DisplayName returns the operator-facing name of the source.
func (s Source) DisplayName() string {
	switch s {
	case SourceCBS:
		return "CBS"
	case SourceSwitch:
		return "Switch"
	case SourceNPCI:
		return "NPCI"
	}
	return string(s)
}

// IsValid checks if the source is one of the three known systems.
func (s Source) IsValid() bool {
	return s == SourceCBS || s == SourceSwitch || s == SourceNPCI
}

// Status is the reconciliation status supplied by the upstream feed. Unknown
// values pass through untouched; the engine never invents a status and only
// ever observes FORCE_MATCHED on a refetch after a successful commit.
type Status string

const (
	StatusHanging         Status = "HANGING"
	StatusPartialMatch    Status = "PARTIAL_MATCH"
	StatusMismatch        Status = "MISMATCH"
	StatusPartialMismatch Status = "PARTIAL_MISMATCH"
	StatusMatched         Status = "MATCHED"
	StatusForceMatched    Status = "FORCE_MATCHED"
)

// Column selects which field of a SourceDetail a comparison reads.
type Column string

const (
	ColumnAmount    Column = "amount"
	ColumnDate      Column = "date"
	ColumnReference Column = "reference"
)

// SourceDetail is the normalized view of one system's record fragment.
type SourceDetail struct {
	Amount decimal.Decimal `json:"amount"`
	// AmountKnown is false when the fragment carried no parseable amount and
	// Amount is only the zero default. Defaulted amounts are excluded from
	// the zero-difference set and never satisfy the commit amount floor.
	AmountKnown bool   `json:"-"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
	// Reference is the source's own transaction identifier, distinct from
	// the cross-system reconciliation reference.
	Reference   string `json:"reference"`
	DebitCredit string `json:"debit_credit,omitempty"`
	Status      string `json:"status,omitempty"`
}

// TransactionRecord is the unified record built from up to three source
// fragments sharing one reconciliation reference number.
type TransactionRecord struct {
	RRN             string                  `json:"rrn"`
	Status          Status                  `json:"status"`
	Sources         map[Source]SourceDetail `json:"sources"`
	SuggestedAction string                  `json:"suggested_action"`
	ZeroDifference  bool                    `json:"zero_difference"`
}

// Detail returns the normalized fragment for the given source, if present.
func (r TransactionRecord) Detail(s Source) (SourceDetail, bool) {
	d, ok := r.Sources[s]
	return d, ok
}

// PresentSources lists the sources that contributed a fragment, in declared
// order.
func (r TransactionRecord) PresentSources() []Source {
	present := make([]Source, 0, len(r.Sources))
	for _, s := range SourceOrder {
		if _, ok := r.Sources[s]; ok {
			present = append(present, s)
		}
	}
	return present
}

// AbsentSources lists the sources with no fragment, in declared order.
func (r TransactionRecord) AbsentSources() []Source {
	var absent []Source
	for _, s := range SourceOrder {
		if _, ok := r.Sources[s]; !ok {
			absent = append(absent, s)
		}
	}
	return absent
}

// ForceMatchRequest is the payload of the force-match write operation.
type ForceMatchRequest struct {
	RRN         string `json:"rrn"`
	LeftSource  Source `json:"left_source"`
	RightSource Source `json:"right_source"`
	Action      string `json:"action"`
	LeftColumn  Column `json:"left_column"`
	RightColumn Column `json:"right_column"`
}
