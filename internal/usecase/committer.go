package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"recon-forcematch/internal/domain"
)

// Commit guard failures. None of these reach the gateway; they are
// operator-correctable blocks, not system errors.
var (
	ErrNoSelection       = errors.New("no comparison selection is open")
	ErrSameSource        = errors.New("left and right source must differ")
	ErrNotZeroDifference = errors.New("selected fields are not zero-difference")
	ErrAmountMismatch    = errors.New("source amounts differ")
)

// Refresher triggers the unguarded post-commit refetch.
type Refresher interface {
	Refetch(ctx context.Context)
}

// Committer issues the force-match write and reconciles its outcome back
// into the state machine.
type Committer struct {
	gateway   ReconciliationGateway
	machine   *Machine
	refresher Refresher
}

// NewCommitter creates a committer bound to the machine whose selection it
// commits.
func NewCommitter(gateway ReconciliationGateway, machine *Machine, refresher Refresher) *Committer {
	return &Committer{gateway: gateway, machine: machine, refresher: refresher}
}

// Commit validates the open selection and, only when every guard passes,
// submits the force match. On success the snapshot is refetched and the
// dialog closed; the record's status is never flipped locally. On failure
// the dialog stays open with the selection intact so the operator can
// correct and retry.
func (c *Committer) Commit(ctx context.Context) error {
	state := c.machine.Snapshot()
	sel := state.Selection
	if sel == nil {
		return ErrNoSelection
	}
	if sel.LeftSource == sel.RightSource {
		return ErrSameSource
	}
	if !sel.IsValid {
		return ErrNotZeroDifference
	}
	if err := amountFloor(sel.Record, sel.LeftSource, sel.RightSource); err != nil {
		return err
	}

	c.machine.Dispatch(CommitStarted{})
	req := domain.ForceMatchRequest{
		RRN:         sel.Record.RRN,
		LeftSource:  sel.LeftSource,
		RightSource: sel.RightSource,
		Action:      "match",
		LeftColumn:  sel.LeftColumn,
		RightColumn: sel.RightColumn,
	}
	if err := c.gateway.SubmitForceMatch(ctx, req); err != nil {
		c.machine.Dispatch(CommitFinished{})
		log.Error().Err(err).Str("rrn", req.RRN).Msg("force match rejected")
		return fmt.Errorf("force match %s: %w", req.RRN, err)
	}

	c.refresher.Refetch(ctx)
	c.machine.Dispatch(CloseComparison{})
	log.Info().
		Str("rrn", req.RRN).
		Str("left_source", string(req.LeftSource)).
		Str("right_source", string(req.RightSource)).
		Msg("force match committed")
	return nil
}

// amountFloor is the hard safety check independent of the chosen comparison
// columns: a financial match requires both sources to carry a real, equal
// amount, whatever the operator was inspecting.
func amountFloor(record domain.TransactionRecord, left, right domain.Source) error {
	l, ok := record.Detail(left)
	if !ok || !l.AmountKnown {
		return ErrAmountMismatch
	}
	r, ok := record.Detail(right)
	if !ok || !r.AmountKnown {
		return ErrAmountMismatch
	}
	if !l.Amount.Equal(r.Amount) {
		return ErrAmountMismatch
	}
	return nil
}
