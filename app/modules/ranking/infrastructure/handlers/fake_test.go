package rankinghandlers

import (
	"context"

	rankingservice "github.com/rankforge/rankforge/app/modules/ranking/application"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/results"
)

// FakeRankingService lets each test plug in just the operation it exercises.
type FakeRankingService struct {
	CreateRankingFunc  func(ctx context.Context, input rankingservice.CreateRankingInput) (results.OperationResult[rankingservice.RankingCreatedPayload, rankingservice.RankingFailurePayload], error)
	UpdateConfigFunc   func(ctx context.Context, input rankingservice.UpdateConfigInput) (results.OperationResult[rankingservice.ConfigUpdatedPayload, rankingservice.RankingFailurePayload], error)
	ChangeStrategyFunc func(ctx context.Context, input rankingservice.ChangeStrategyInput) (results.OperationResult[rankingservice.StrategyChangedPayload, rankingservice.RankingFailurePayload], error)
	GetRankingFunc     func(ctx context.Context, input rankingservice.GetRankingInput) (results.OperationResult[rankingservice.RankingRetrievedPayload, rankingservice.RankingFailurePayload], error)
	ListRankingsFunc   func(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult[rankingservice.RankingListPayload, rankingservice.RankingFailurePayload], error)
}

func (f *FakeRankingService) CreateRanking(ctx context.Context, input rankingservice.CreateRankingInput) (results.OperationResult[rankingservice.RankingCreatedPayload, rankingservice.RankingFailurePayload], error) {
	return f.CreateRankingFunc(ctx, input)
}

func (f *FakeRankingService) UpdateConfig(ctx context.Context, input rankingservice.UpdateConfigInput) (results.OperationResult[rankingservice.ConfigUpdatedPayload, rankingservice.RankingFailurePayload], error) {
	return f.UpdateConfigFunc(ctx, input)
}

func (f *FakeRankingService) ChangeStrategy(ctx context.Context, input rankingservice.ChangeStrategyInput) (results.OperationResult[rankingservice.StrategyChangedPayload, rankingservice.RankingFailurePayload], error) {
	return f.ChangeStrategyFunc(ctx, input)
}

func (f *FakeRankingService) GetRanking(ctx context.Context, input rankingservice.GetRankingInput) (results.OperationResult[rankingservice.RankingRetrievedPayload, rankingservice.RankingFailurePayload], error) {
	return f.GetRankingFunc(ctx, input)
}

func (f *FakeRankingService) ListRankings(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult[rankingservice.RankingListPayload, rankingservice.RankingFailurePayload], error) {
	return f.ListRankingsFunc(ctx, guildID)
}
