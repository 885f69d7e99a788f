package matchservice

import (
	"context"
	"time"

	"github.com/rankforge/rankforge/internal/results"
)

// Service is the match module's application surface.
type Service interface {
	StartMatch(ctx context.Context, input StartMatchInput) (results.OperationResult[MatchStartedPayload, MatchFailurePayload], error)
	RecordOutcome(ctx context.Context, input RecordOutcomeInput) (results.OperationResult[MatchFinalizedPayload, MatchFailurePayload], error)
	UpdateOutcome(ctx context.Context, input UpdateOutcomeInput) (results.OperationResult[OutcomeUpdatedPayload, MatchFailurePayload], error)
	CancelMatch(ctx context.Context, input CancelMatchInput) (results.OperationResult[MatchCanceledPayload, MatchFailurePayload], error)

	// Rescore replays a ranking's finished match history from RescoreInput.Since
	// onward, inside one transaction, holding the ranking's rescore lock.
	Rescore(ctx context.Context, input RescoreInput) (results.OperationResult[RescorePayload, MatchFailurePayload], error)
}

// Metrics is the observability hook the service records into.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordRescoredMatches(ctx context.Context, n int)
}
