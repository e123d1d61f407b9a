package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"recon-forcematch/internal/config"
	"recon-forcematch/internal/domain"
	"recon-forcematch/internal/gateway"
	"recon-forcematch/internal/usecase"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML configuration file (optional)")
	flag.Parse()

	// Structured logging with sane defaults
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// --- Dependency Injection (Wiring the engine) ---
	// The display layer embedding this engine receives the machine for
	// snapshots/dispatches and a committer for the force-match action; this
	// harness only polls and logs snapshot summaries.
	client := gateway.NewClient(
		cfg.Gateway.BaseURL,
		cfg.Gateway.RequestTimeout(),
		cfg.Gateway.Breaker.FailureThreshold,
		cfg.Gateway.Breaker.ResetTimeout(),
	)
	machine := usecase.NewMachine()
	limiter := rate.NewLimiter(rate.Limit(cfg.Polling.ManualRefreshRPS), cfg.Polling.ManualRefreshBurst)
	poller := usecase.NewPoller(client, machine, cfg.Polling.Interval(), limiter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go logSummaries(ctx, machine, cfg.Polling.Interval())

	log.Info().
		Str("base_url", cfg.Gateway.BaseURL).
		Dur("interval", cfg.Polling.Interval()).
		Msg("force-match engine polling")
	poller.Run(ctx)
	log.Info().Msg("shutting down")
}

func logSummaries(ctx context.Context, machine *usecase.Machine, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state := machine.Snapshot()
			summary := domain.Summarize(state.Transactions)
			log.Info().
				Int("records", summary.TotalRecords).
				Int("zero_difference", summary.ZeroDifference).
				Int("hanging", summary.ByStatus[domain.StatusHanging]).
				Int("mismatch", summary.ByStatus[domain.StatusMismatch]).
				Int("partial_mismatch", summary.ByStatus[domain.StatusPartialMismatch]).
				Msg("snapshot summary")
		}
	}
}
