package matchhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	matchservice "github.com/rankforge/rankforge/app/modules/match/application"
	matchevents "github.com/rankforge/rankforge/app/modules/match/events"
	"github.com/rankforge/rankforge/internal/attr"
)

func (h *MatchHandlers) HandleCancelMatchRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleCancelMatchRequest",
		&matchevents.MatchCancelRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*matchevents.MatchCancelRequestPayloadV1)

			result, err := h.service.CancelMatch(ctx, matchservice.CancelMatchInput{
				GuildID: req.GuildID,
				MatchID: req.MatchID,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				h.logger.InfoContext(ctx, "Match cancel rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.MatchID("match_id", req.MatchID),
					attr.String("reason", result.Failure.Reason),
				)
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &matchevents.MatchFailedPayloadV1{
					GuildID: result.Failure.GuildID,
					MatchID: result.Failure.MatchID,
					Reason:  result.Failure.Reason,
				}, matchevents.MatchCancelFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &matchevents.MatchCanceledPayloadV1{
				Match:           result.Success.Match,
				RescoredMatches: result.Success.RescoredMatches,
			}, matchevents.MatchCanceled)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
