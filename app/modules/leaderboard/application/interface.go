package leaderboardservice

import (
	"context"
	"time"

	"github.com/rankforge/rankforge/internal/results"
)

// Service is the leaderboard module's application surface.
type Service interface {
	GetStandings(ctx context.Context, input GetStandingsInput) (results.OperationResult[StandingsPayload, LeaderboardFailurePayload], error)
	GetRatingHistory(ctx context.Context, input GetRatingHistoryInput) (results.OperationResult[RatingHistoryPayload, LeaderboardFailurePayload], error)
	RenderHistoryChart(ctx context.Context, input RenderHistoryChartInput) (results.OperationResult[HistoryChartPayload, LeaderboardFailurePayload], error)
	ExportStandings(ctx context.Context, input ExportStandingsInput) (results.OperationResult[StandingsExportPayload, LeaderboardFailurePayload], error)
}

// Metrics is the observability hook the service records into.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
}
