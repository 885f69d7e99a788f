package playerservice

import (
	"context"
	"time"

	"github.com/rankforge/rankforge/internal/results"
)

// Service is the player module's application surface.
type Service interface {
	RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (results.OperationResult[PlayerRegisteredPayload, PlayerFailurePayload], error)
	GetPlayerRating(ctx context.Context, input GetPlayerRatingInput) (results.OperationResult[PlayerRatingPayload, PlayerFailurePayload], error)
	ListPlayers(ctx context.Context, input ListPlayersInput) (results.OperationResult[PlayerListPayload, PlayerFailurePayload], error)
}

// Metrics is the observability hook the service records into.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
}
