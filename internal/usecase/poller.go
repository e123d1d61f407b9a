package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"recon-forcematch/internal/domain"
)

// DefaultPollInterval applies when configuration supplies none.
const DefaultPollInterval = 30 * time.Second

// Poller schedules periodic and on-demand refetches and feeds normalized
// snapshots into the state machine. Every issued fetch carries a token from
// a monotonic sequence; the reducer discards results older than the newest
// applied one, so a manual refresh overlapping a timer fetch cannot regress
// state with a slow stale response.
type Poller struct {
	gateway  ReconciliationGateway
	machine  *Machine
	interval time.Duration
	limiter  *rate.Limiter
	seq      atomic.Uint64
}

// NewPoller creates a poller. limiter throttles operator-triggered refreshes
// and may be nil to disable throttling.
func NewPoller(gateway ReconciliationGateway, machine *Machine, interval time.Duration, limiter *rate.Limiter) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		gateway:  gateway,
		machine:  machine,
		interval: interval,
		limiter:  limiter,
	}
}

// Run fetches once immediately and then on every tick until the context is
// cancelled. No dispatches are issued after cancellation.
func (p *Poller) Run(ctx context.Context) {
	p.Refetch(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refetch(ctx)
		}
	}
}

// Refresh is the manual, operator-triggered fetch. It bypasses the timer but
// not the rate limiter.
func (p *Poller) Refresh(ctx context.Context) {
	if p.limiter != nil && !p.limiter.Allow() {
		log.Warn().Msg("manual refresh throttled")
		return
	}
	p.Refetch(ctx)
}

// Refetch issues one fetch immediately, without throttling. The post-commit
// refresh uses it directly: the authoritative state after a force match
// comes only from the upstream feed, never from local mutation.
func (p *Poller) Refetch(ctx context.Context) {
	seq := p.seq.Add(1)
	p.machine.Dispatch(FetchStarted{})

	bundles, err := p.gateway.FetchRawRecords(ctx)
	if err != nil {
		log.Warn().Err(err).Uint64("seq", seq).Msg("fetch failed, clearing transaction list")
		p.machine.Dispatch(FetchFailed{Seq: seq})
		return
	}

	records := NormalizeBundles(bundles)
	summary := domain.Summarize(records)
	log.Debug().
		Uint64("seq", seq).
		Int("records", summary.TotalRecords).
		Int("zero_difference", summary.ZeroDifference).
		Msg("snapshot fetched")
	p.machine.Dispatch(FetchSucceeded{Seq: seq, Records: records})
}
