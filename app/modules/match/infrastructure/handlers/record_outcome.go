package matchhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	matchservice "github.com/rankforge/rankforge/app/modules/match/application"
	matchevents "github.com/rankforge/rankforge/app/modules/match/events"
	"github.com/rankforge/rankforge/internal/attr"
)

func (h *MatchHandlers) HandleRecordOutcomeRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleRecordOutcomeRequest",
		&matchevents.MatchRecordRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*matchevents.MatchRecordRequestPayloadV1)

			timeFinished := req.TimeFinished
			if timeFinished.IsZero() && req.FinishedAtText != "" {
				parsed, parseErr := h.timeParser.ParseFinishedAt(req.FinishedAtText, req.Timezone, h.clock)
				if parseErr != nil {
					failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &matchevents.MatchFailedPayloadV1{
						GuildID: req.GuildID,
						MatchID: req.MatchID,
						Reason:  parseErr.Error(),
					}, matchevents.MatchRecordFailed)
					if errCreate != nil {
						return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
					}
					return []*message.Message{failureMsg}, nil
				}
				timeFinished = parsed
			}

			result, err := h.service.RecordOutcome(ctx, matchservice.RecordOutcomeInput{
				GuildID:      req.GuildID,
				MatchID:      req.MatchID,
				Outcome:      req.Outcome,
				TimeFinished: timeFinished,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				h.logger.InfoContext(ctx, "Outcome recording rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.MatchID("match_id", req.MatchID),
					attr.String("reason", result.Failure.Reason),
				)
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &matchevents.MatchFailedPayloadV1{
					GuildID: result.Failure.GuildID,
					MatchID: result.Failure.MatchID,
					Reason:  result.Failure.Reason,
				}, matchevents.MatchRecordFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &matchevents.MatchFinalizedPayloadV1{
				Match:           result.Success.Match,
				RescoredMatches: result.Success.RescoredMatches,
			}, matchevents.MatchFinalized)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
