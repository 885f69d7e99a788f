package playerhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	playerservice "github.com/rankforge/rankforge/app/modules/player/application"
	playerevents "github.com/rankforge/rankforge/app/modules/player/events"
	"github.com/rankforge/rankforge/internal/attr"
)

func (h *PlayerHandlers) HandleRegisterPlayerRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleRegisterPlayerRequest",
		&playerevents.PlayerRegisterRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*playerevents.PlayerRegisterRequestPayloadV1)

			result, err := h.service.RegisterPlayer(ctx, playerservice.RegisterPlayerInput{
				GuildID:     req.GuildID,
				UserID:      req.UserID,
				DisplayName: req.DisplayName,
				RankingID:   req.RankingID,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				h.logger.InfoContext(ctx, "Player registration rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.UserID("user_id", req.UserID),
					attr.String("reason", result.Failure.Reason),
				)
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &playerevents.PlayerFailedPayloadV1{
					GuildID: result.Failure.GuildID,
					UserID:  result.Failure.UserID,
					Reason:  result.Failure.Reason,
				}, playerevents.PlayerRegisterFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &playerevents.PlayerRegisteredPayloadV1{
				GuildID:       result.Success.Player.GuildID,
				UserID:        result.Success.Player.UserID,
				DisplayName:   result.Success.Player.DisplayName,
				InitialRating: result.Success.InitialRating,
			}, playerevents.PlayerRegistered)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
