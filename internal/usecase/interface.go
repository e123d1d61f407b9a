package usecase

import (
	"context"

	"recon-forcematch/internal/domain"
)

// ReconciliationGateway defines the two upstream operations the engine
// consumes. The engine depends on this interface, not on a concrete
// implementation, and holds no global client state.
//
//go:generate mockgen -destination=mocks/mock_gateway.go -source=interface.go ReconciliationGateway
type ReconciliationGateway interface {
	FetchRawRecords(ctx context.Context) (map[string]domain.RawBundle, error)
	SubmitForceMatch(ctx context.Context, req domain.ForceMatchRequest) error
}
