package matchhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	matchservice "github.com/rankforge/rankforge/app/modules/match/application"
	matchevents "github.com/rankforge/rankforge/app/modules/match/events"
	"github.com/rankforge/rankforge/internal/attr"
)

func (h *MatchHandlers) HandleRescoreRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleRescoreRequest",
		&matchevents.MatchRescoreRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*matchevents.MatchRescoreRequestPayloadV1)

			result, err := h.service.Rescore(ctx, matchservice.RescoreInput{
				GuildID:        req.GuildID,
				RankingID:      req.RankingID,
				Since:          req.Since,
				ResetToInitial: req.ResetToInitial,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				h.logger.InfoContext(ctx, "Rescore rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.RankingID("ranking_id", req.RankingID),
					attr.String("reason", result.Failure.Reason),
				)
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &matchevents.MatchFailedPayloadV1{
					GuildID: result.Failure.GuildID,
					Reason:  result.Failure.Reason,
				}, matchevents.MatchRescoreFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &matchevents.MatchRescoredPayloadV1{
				RankingID:       result.Success.RankingID,
				RescoredMatches: result.Success.RescoredMatches,
				PlayersUpdated:  result.Success.PlayersUpdated,
			}, matchevents.MatchRescored)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
