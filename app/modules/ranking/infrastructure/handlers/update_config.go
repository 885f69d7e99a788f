package rankinghandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	matchevents "github.com/rankforge/rankforge/app/modules/match/events"
	rankingservice "github.com/rankforge/rankforge/app/modules/ranking/application"
	rankingevents "github.com/rankforge/rankforge/app/modules/ranking/events"
	"github.com/rankforge/rankforge/internal/attr"
)

// HandleUpdateConfigRequest applies a config change. When a rating tunable
// changed, stored ratings are stale, so a full-reset rescore request is
// published alongside the result event.
func (h *RankingHandlers) HandleUpdateConfigRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleUpdateConfigRequest",
		&rankingevents.RankingUpdateConfigRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*rankingevents.RankingUpdateConfigRequestPayloadV1)

			result, err := h.service.UpdateConfig(ctx, rankingservice.UpdateConfigInput{
				GuildID:           req.GuildID,
				RankingID:         req.RankingID,
				Name:              req.Name,
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
				h.logger.InfoContext(ctx, "Ranking config update rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.RankingID("ranking_id", req.RankingID),
					attr.String("reason", result.Failure.Reason),
				)
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &rankingevents.RankingFailedPayloadV1{
					GuildID:   result.Failure.GuildID,
					RankingID: result.Failure.RankingID,
					Reason:    result.Failure.Reason,
				}, rankingevents.RankingUpdateConfigFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &rankingevents.RankingConfigUpdatedPayloadV1{
				Ranking:         result.Success.Ranking,
				RescoreRequired: result.Success.RescoreRequired,
			}, rankingevents.RankingConfigUpdated)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}

			out := []*message.Message{successMsg}
			if result.Success.RescoreRequired {
				rescoreMsg, err := h.helpers.CreateResultMessage(msg, &matchevents.MatchRescoreRequestPayloadV1{
					GuildID:        req.GuildID,
					RankingID:      req.RankingID,
					ResetToInitial: true,
				}, matchevents.MatchRescoreRequest)
				if err != nil {
					return nil, fmt.Errorf("failed to create rescore request message: %w", err)
				}
				out = append(out, rescoreMsg)
			}
			return out, nil
		},
	)
	return wrappedHandler(msg)
}
