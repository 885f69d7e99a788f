package playerhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	playerservice "github.com/rankforge/rankforge/app/modules/player/application"
	playerevents "github.com/rankforge/rankforge/app/modules/player/events"
)

func (h *PlayerHandlers) HandleGetRatingRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleGetRatingRequest",
		&playerevents.PlayerGetRatingRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*playerevents.PlayerGetRatingRequestPayloadV1)

			result, err := h.service.GetPlayerRating(ctx, playerservice.GetPlayerRatingInput{
				GuildID:   req.GuildID,
				RankingID: req.RankingID,
				UserID:    req.UserID,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &playerevents.PlayerFailedPayloadV1{
					GuildID: result.Failure.GuildID,
					UserID:  result.Failure.UserID,
					Reason:  result.Failure.Reason,
				}, playerevents.PlayerGetRatingFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &playerevents.PlayerRatingPayloadV1{
				GuildID:   result.Success.GuildID,
				RankingID: result.Success.RankingID,
				UserID:    result.Success.UserID,
				Rating:    result.Success.Rating,
				FetchedAt: result.Success.FetchedAt,
			}, playerevents.PlayerRating)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}

func (h *PlayerHandlers) HandleListPlayersRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleListPlayersRequest",
		&playerevents.PlayerListRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*playerevents.PlayerListRequestPayloadV1)

			result, err := h.service.ListPlayers(ctx, playerservice.ListPlayersInput{GuildID: req.GuildID})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &playerevents.PlayerFailedPayloadV1{
					GuildID: result.Failure.GuildID,
					Reason:  result.Failure.Reason,
				}, playerevents.PlayerListFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			players := make([]playerevents.PlayerInfoPayload, 0, len(result.Success.Players))
			for _, p := range result.Success.Players {
				players = append(players, playerevents.PlayerInfoPayload{
					UserID:      p.UserID,
					DisplayName: p.DisplayName,
				})
			}
			successMsg, err := h.helpers.CreateResultMessage(msg, &playerevents.PlayerListedPayloadV1{
				GuildID: result.Success.GuildID,
				Players: players,
			}, playerevents.PlayerListed)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
