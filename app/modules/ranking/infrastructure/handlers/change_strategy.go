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

// HandleChangeStrategyRequest switches a ranking's strategy. The old ratings
// are meaningless under the new strategy, so a full-reset rescore request is
// always published alongside the result event.
func (h *RankingHandlers) HandleChangeStrategyRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleChangeStrategyRequest",
		&rankingevents.RankingChangeStrategyRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*rankingevents.RankingChangeStrategyRequestPayloadV1)

			result, err := h.service.ChangeStrategy(ctx, rankingservice.ChangeStrategyInput{
				GuildID:   req.GuildID,
				RankingID: req.RankingID,
				Strategy:  req.Strategy,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				h.logger.InfoContext(ctx, "Strategy change rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.RankingID("ranking_id", req.RankingID),
					attr.String("reason", result.Failure.Reason),
				)
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &rankingevents.RankingFailedPayloadV1{
					GuildID:   result.Failure.GuildID,
					RankingID: result.Failure.RankingID,
					Reason:    result.Failure.Reason,
				}, rankingevents.RankingChangeStrategyFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &rankingevents.RankingStrategyChangedPayloadV1{
				Ranking: result.Success.Ranking,
			}, rankingevents.RankingStrategyChanged)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}

			rescoreMsg, err := h.helpers.CreateResultMessage(msg, &matchevents.MatchRescoreRequestPayloadV1{
				GuildID:        req.GuildID,
				RankingID:      req.RankingID,
				ResetToInitial: true,
			}, matchevents.MatchRescoreRequest)
			if err != nil {
				return nil, fmt.Errorf("failed to create rescore request message: %w", err)
			}

			return []*message.Message{successMsg, rescoreMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
