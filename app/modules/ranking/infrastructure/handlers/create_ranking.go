package rankinghandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	rankingservice "github.com/rankforge/rankforge/app/modules/ranking/application"
	rankingevents "github.com/rankforge/rankforge/app/modules/ranking/events"
	"github.com/rankforge/rankforge/internal/attr"
)

func (h *RankingHandlers) HandleCreateRankingRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleCreateRankingRequest",
		&rankingevents.RankingCreateRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*rankingevents.RankingCreateRequestPayloadV1)

			result, err := h.service.CreateRanking(ctx, rankingservice.CreateRankingInput{
				GuildID:           req.GuildID,
				Name:              req.Name,
				Strategy:          req.Strategy,
				Scale:             req.Scale,
				DefaultRating:     req.DefaultRating,
				Tau:               req.Tau,
				InitialRating:     req.InitialRating,
				InitialDeviation:  req.InitialDeviation,
				InitialVolatility: req.InitialVolatility,
				PeriodLength:      req.PeriodLength,
				WinDiffStep:       req.WinDiffStep,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				h.logger.InfoContext(ctx, "Ranking creation rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.GuildID("guild_id", req.GuildID),
					attr.String("reason", result.Failure.Reason),
				)
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &rankingevents.RankingFailedPayloadV1{
					GuildID:   result.Failure.GuildID,
					RankingID: result.Failure.RankingID,
					Reason:    result.Failure.Reason,
				}, rankingevents.RankingCreateFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &rankingevents.RankingCreatedPayloadV1{
				Ranking: result.Success.Ranking,
			}, rankingevents.RankingCreated)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
