package usecase

import (
	"strings"
	"sync"

	"recon-forcematch/internal/domain"
)

// StatusFilterAll matches every status in the derived view.
const StatusFilterAll = "all"

// State is the single value the force-match reducer owns: the transaction
// list, the filters, the comparison dialog and the in-flight flags.
type State struct {
	Transactions []domain.TransactionRecord
	Loading      bool
	SearchTerm   string
	StatusFilter string
	// Selection is nil while the comparison dialog is closed.
	Selection *Selection
	// FetchSeq is the token of the newest applied fetch result. Results
	// carrying an older token are discarded, so overlapping fetches resolve
	// last-issued-wins rather than last-resolved-wins.
	FetchSeq uint64
}

// NewState returns the initial state: empty list, status filter "all",
// dialog closed.
func NewState() State {
	return State{StatusFilter: StatusFilterAll}
}

// Visible is the pure derived view over Transactions: case-insensitive RRN
// substring search plus exact status filter. It never mutates the stored
// collection.
func (s State) Visible() []domain.TransactionRecord {
	term := strings.ToLower(strings.TrimSpace(s.SearchTerm))
	visible := make([]domain.TransactionRecord, 0, len(s.Transactions))
	for _, r := range s.Transactions {
		if term != "" && !strings.Contains(strings.ToLower(r.RRN), term) {
			continue
		}
		if s.StatusFilter != "" && s.StatusFilter != StatusFilterAll && string(r.Status) != s.StatusFilter {
			continue
		}
		visible = append(visible, r)
	}
	return visible
}

// Selection is the ephemeral context of one open comparison dialog. It is
// created when a record is opened for comparison and destroyed on close, on
// successful commit, or after a commit error is acknowledged.
type Selection struct {
	Record       domain.TransactionRecord
	LeftSource   domain.Source
	RightSource  domain.Source
	LeftColumn   domain.Column
	RightColumn  domain.Column
	IsValid      bool
	IsCommitting bool
}

// newSelection seeds a dialog from a record: left/right default to the first
// two distinct present sources in declared order, both columns to amount.
// With a single present source the right side defaults to the first declared
// source that differs, which the validator reports as invalid.
func newSelection(record domain.TransactionRecord) *Selection {
	present := record.PresentSources()
	left := domain.SourceOrder[0]
	if len(present) > 0 {
		left = present[0]
	}
	right := left
	if len(present) > 1 {
		right = present[1]
	} else {
		for _, s := range domain.SourceOrder {
			if s != left {
				right = s
				break
			}
		}
	}
	return &Selection{
		Record:      record,
		LeftSource:  left,
		RightSource: right,
		LeftColumn:  domain.ColumnAmount,
		RightColumn: domain.ColumnAmount,
	}
}

// Action is the tagged union of every transition trigger.
type Action interface{ isAction() }

type (
	// FetchStarted marks a fetch as in flight.
	FetchStarted struct{}
	// FetchSucceeded replaces the transaction list wholesale with a fresh
	// snapshot. Seq is the fetch's sequence token.
	FetchSucceeded struct {
		Seq     uint64
		Records []domain.TransactionRecord
	}
	// FetchFailed clears the transaction list; polling continues unaffected.
	FetchFailed struct{ Seq uint64 }
	// SetSearchTerm updates the search filter only; no refetch.
	SetSearchTerm struct{ Term string }
	// SetStatusFilter updates the status filter only; no refetch.
	SetStatusFilter struct{ Status string }
	// OpenComparison opens the dialog seeded from the record.
	OpenComparison struct{ Record domain.TransactionRecord }
	// SetLeftSource changes the left comparison source.
	SetLeftSource struct{ Source domain.Source }
	// SetRightSource changes the right comparison source.
	SetRightSource struct{ Source domain.Source }
	// SetLeftColumn changes the left comparison column.
	SetLeftColumn struct{ Column domain.Column }
	// SetRightColumn changes the right comparison column.
	SetRightColumn struct{ Column domain.Column }
	// CommitStarted marks the force-match write as in flight.
	CommitStarted struct{}
	// CommitFinished clears the in-flight flag, keeping the dialog open.
	CommitFinished struct{}
	// CloseComparison closes the dialog and resets the selection.
	CloseComparison struct{}
)

func (FetchStarted) isAction()    {}
func (FetchSucceeded) isAction()  {}
func (FetchFailed) isAction()     {}
func (SetSearchTerm) isAction()   {}
func (SetStatusFilter) isAction() {}
func (OpenComparison) isAction()  {}
func (SetLeftSource) isAction()   {}
func (SetRightSource) isAction()  {}
func (SetLeftColumn) isAction()   {}
func (SetRightColumn) isAction()  {}
func (CommitStarted) isAction()   {}
func (CommitFinished) isAction()  {}
func (CloseComparison) isAction() {}

// Reduce is the pure transition function. Selection validity is not part of
// any transition; the Machine recomputes it after every reduction while the
// dialog is open.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case FetchStarted:
		s.Loading = true
	case FetchSucceeded:
		if act.Seq <= s.FetchSeq {
			return s // stale response
		}
		s.FetchSeq = act.Seq
		s.Loading = false
		s.Transactions = act.Records
	case FetchFailed:
		if act.Seq <= s.FetchSeq {
			return s
		}
		s.FetchSeq = act.Seq
		s.Loading = false
		s.Transactions = nil
	case SetSearchTerm:
		s.SearchTerm = act.Term
	case SetStatusFilter:
		s.StatusFilter = act.Status
	case OpenComparison:
		s.Selection = newSelection(act.Record)
	case SetLeftSource:
		s = s.withSelection(func(sel *Selection) { sel.LeftSource = act.Source })
	case SetRightSource:
		s = s.withSelection(func(sel *Selection) { sel.RightSource = act.Source })
	case SetLeftColumn:
		s = s.withSelection(func(sel *Selection) { sel.LeftColumn = act.Column })
	case SetRightColumn:
		s = s.withSelection(func(sel *Selection) { sel.RightColumn = act.Column })
	case CommitStarted:
		s = s.withSelection(func(sel *Selection) { sel.IsCommitting = true })
	case CommitFinished:
		s = s.withSelection(func(sel *Selection) { sel.IsCommitting = false })
	case CloseComparison:
		s.Selection = nil
	}
	return s
}

// withSelection applies fn to a copy of the open selection; dialog-closed
// states pass through unchanged.
func (s State) withSelection(fn func(*Selection)) State {
	if s.Selection == nil {
		return s
	}
	sel := *s.Selection
	fn(&sel)
	s.Selection = &sel
	return s
}

// Machine serializes dispatches over one State and applies the reactive
// validation rule. Each dispatched action runs to completion before the next
// is processed, so state is never observed half-updated.
type Machine struct {
	mu    sync.Mutex
	state State
}

// NewMachine creates a machine holding the initial state.
func NewMachine() *Machine {
	return &Machine{state: NewState()}
}

// Dispatch applies one action. While the comparison dialog is open, the
// selection's validity is recomputed after the transition so that any change
// to the selected record, sources or columns is reflected.
func (m *Machine) Dispatch(a Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Reduce(m.state, a)
	if sel := m.state.Selection; sel != nil {
		revalidated := *sel
		revalidated.IsValid = Validate(sel.Record, sel.LeftSource, sel.RightSource, sel.LeftColumn, sel.RightColumn)
		m.state.Selection = &revalidated
	}
}

// Snapshot returns a copy of the current state. The contained record slice
// is shared read-only data; callers must not mutate it.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	if s.Selection != nil {
		sel := *s.Selection
		s.Selection = &sel
	}
	return s
}
