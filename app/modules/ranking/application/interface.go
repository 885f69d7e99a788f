package rankingservice

import (
	"context"
	"time"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/results"
)

// Service is the ranking module's application surface.
type Service interface {
	CreateRanking(ctx context.Context, input CreateRankingInput) (results.OperationResult[RankingCreatedPayload, RankingFailurePayload], error)
	UpdateConfig(ctx context.Context, input UpdateConfigInput) (results.OperationResult[ConfigUpdatedPayload, RankingFailurePayload], error)
	ChangeStrategy(ctx context.Context, input ChangeStrategyInput) (results.OperationResult[StrategyChangedPayload, RankingFailurePayload], error)
	GetRanking(ctx context.Context, input GetRankingInput) (results.OperationResult[RankingRetrievedPayload, RankingFailurePayload], error)
	ListRankings(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult[RankingListPayload, RankingFailurePayload], error)
}

// Metrics is the observability hook the service records into.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
}
