package domain

// RawBundle is the per-RRN payload returned by the upstream fetch operation:
// an overall status plus up to three raw source fragments.
type RawBundle struct {
	Status string       `json:"status"`
	CBS    *RawFragment `json:"cbs,omitempty"`
	Switch *RawFragment `json:"switch,omitempty"`
	NPCI   *RawFragment `json:"npci,omitempty"`
}

// Fragment returns the raw fragment for the given source, or nil.
func (b RawBundle) Fragment(s Source) *RawFragment {
	switch s {
	case SourceCBS:
		return b.CBS
	case SourceSwitch:
		return b.Switch
	case SourceNPCI:
		return b.NPCI
	}
	return nil
}

// RawFragment is one system's record as the upstream feed delivers it. The
// three systems disagree on field names, so every known alias is mapped and
// resolution order is handled by the normalizer. Amount may arrive as a JSON
// number or a string.
type RawFragment struct {
	Amount                   any    `json:"amount,omitempty"`
	Date                     string `json:"date,omitempty"`
	TranDate                 string `json:"tran_date,omitempty"`
	Time                     string `json:"time,omitempty"`
	Description              string `json:"description,omitempty"`
	TxnID                    string `json:"txn_id,omitempty"`
	TranID                   string `json:"tran_id,omitempty"`
	Reference                string `json:"reference,omitempty"`
	RRN                      string `json:"rrn,omitempty"`
	ActualRRN                string `json:"actual_rrn,omitempty"`
	RetrievalReferenceNumber string `json:"retrieval_reference_number,omitempty"`
	DebitCredit              string `json:"debit_credit,omitempty"`
	DrCr                     string `json:"dr_cr,omitempty"`
	Status                   string `json:"status,omitempty"`
}
