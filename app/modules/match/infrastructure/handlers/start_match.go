package matchhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	matchservice "github.com/rankforge/rankforge/app/modules/match/application"
	matchevents "github.com/rankforge/rankforge/app/modules/match/events"
	"github.com/rankforge/rankforge/internal/attr"
)

func (h *MatchHandlers) HandleStartMatchRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleStartMatchRequest",
		&matchevents.MatchStartRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*matchevents.MatchStartRequestPayloadV1)

			teams := make([]matchservice.TeamInput, len(req.Teams))
			for i, team := range req.Teams {
				teams[i] = matchservice.TeamInput{Players: team.Players}
			}

			result, err := h.service.StartMatch(ctx, matchservice.StartMatchInput{
				GuildID:     req.GuildID,
				RankingID:   req.RankingID,
				Teams:       teams,
				CreatedBy:   req.CreatedBy,
				TimeStarted: req.TimeStarted,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				h.logger.InfoContext(ctx, "Match start rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.String("reason", result.Failure.Reason),
				)
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &matchevents.MatchFailedPayloadV1{
					GuildID: result.Failure.GuildID,
					Reason:  result.Failure.Reason,
				}, matchevents.MatchStartFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &matchevents.MatchStartedPayloadV1{
				Match: result.Success.Match,
			}, matchevents.MatchStarted)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
