package playerhandlers

import (
	"context"

	playerservice "github.com/rankforge/rankforge/app/modules/player/application"
	"github.com/rankforge/rankforge/internal/results"
)

// FakePlayerService lets each test plug in just the operation it exercises.
type FakePlayerService struct {
	RegisterPlayerFunc  func(ctx context.Context, input playerservice.RegisterPlayerInput) (results.OperationResult[playerservice.PlayerRegisteredPayload, playerservice.PlayerFailurePayload], error)
	GetPlayerRatingFunc func(ctx context.Context, input playerservice.GetPlayerRatingInput) (results.OperationResult[playerservice.PlayerRatingPayload, playerservice.PlayerFailurePayload], error)
	ListPlayersFunc     func(ctx context.Context, input playerservice.ListPlayersInput) (results.OperationResult[playerservice.PlayerListPayload, playerservice.PlayerFailurePayload], error)
}

func (f *FakePlayerService) RegisterPlayer(ctx context.Context, input playerservice.RegisterPlayerInput) (results.OperationResult[playerservice.PlayerRegisteredPayload, playerservice.PlayerFailurePayload], error) {
	return f.RegisterPlayerFunc(ctx, input)
}

func (f *FakePlayerService) GetPlayerRating(ctx context.Context, input playerservice.GetPlayerRatingInput) (results.OperationResult[playerservice.PlayerRatingPayload, playerservice.PlayerFailurePayload], error) {
	return f.GetPlayerRatingFunc(ctx, input)
}

func (f *FakePlayerService) ListPlayers(ctx context.Context, input playerservice.ListPlayersInput) (results.OperationResult[playerservice.PlayerListPayload, playerservice.PlayerFailurePayload], error) {
	return f.ListPlayersFunc(ctx, input)
}
