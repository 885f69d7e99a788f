package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/rankforge/rankforge/app/modules/leaderboard/application"
	"github.com/rankforge/rankforge/internal/results"
)

// FakeLeaderboardService lets each test script exactly the service behavior it
// needs.
type FakeLeaderboardService struct {
	GetStandingsFunc       func(ctx context.Context, input leaderboardservice.GetStandingsInput) (results.OperationResult[leaderboardservice.StandingsPayload, leaderboardservice.LeaderboardFailurePayload], error)
	GetRatingHistoryFunc   func(ctx context.Context, input leaderboardservice.GetRatingHistoryInput) (results.OperationResult[leaderboardservice.RatingHistoryPayload, leaderboardservice.LeaderboardFailurePayload], error)
	RenderHistoryChartFunc func(ctx context.Context, input leaderboardservice.RenderHistoryChartInput) (results.OperationResult[leaderboardservice.HistoryChartPayload, leaderboardservice.LeaderboardFailurePayload], error)
	ExportStandingsFunc    func(ctx context.Context, input leaderboardservice.ExportStandingsInput) (results.OperationResult[leaderboardservice.StandingsExportPayload, leaderboardservice.LeaderboardFailurePayload], error)
}

func (f *FakeLeaderboardService) GetStandings(ctx context.Context, input leaderboardservice.GetStandingsInput) (results.OperationResult[leaderboardservice.StandingsPayload, leaderboardservice.LeaderboardFailurePayload], error) {
	return f.GetStandingsFunc(ctx, input)
}

func (f *FakeLeaderboardService) GetRatingHistory(ctx context.Context, input leaderboardservice.GetRatingHistoryInput) (results.OperationResult[leaderboardservice.RatingHistoryPayload, leaderboardservice.LeaderboardFailurePayload], error) {
	return f.GetRatingHistoryFunc(ctx, input)
}

func (f *FakeLeaderboardService) RenderHistoryChart(ctx context.Context, input leaderboardservice.RenderHistoryChartInput) (results.OperationResult[leaderboardservice.HistoryChartPayload, leaderboardservice.LeaderboardFailurePayload], error) {
	return f.RenderHistoryChartFunc(ctx, input)
}

func (f *FakeLeaderboardService) ExportStandings(ctx context.Context, input leaderboardservice.ExportStandingsInput) (results.OperationResult[leaderboardservice.StandingsExportPayload, leaderboardservice.LeaderboardFailurePayload], error) {
	return f.ExportStandingsFunc(ctx, input)
}
