package leaderboardhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	leaderboardservice "github.com/rankforge/rankforge/app/modules/leaderboard/application"
	leaderboardevents "github.com/rankforge/rankforge/app/modules/leaderboard/events"
)

func (h *LeaderboardHandlers) HandleStandingsRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleStandingsRequest",
		&leaderboardevents.StandingsRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*leaderboardevents.StandingsRequestPayloadV1)

			result, err := h.service.GetStandings(ctx, leaderboardservice.GetStandingsInput{
				GuildID:   req.GuildID,
				RankingID: req.RankingID,
				Limit:     req.Limit,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &leaderboardevents.LeaderboardFailedPayloadV1{
					GuildID:   result.Failure.GuildID,
					RankingID: result.Failure.RankingID,
					Reason:    result.Failure.Reason,
				}, leaderboardevents.StandingsFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &leaderboardevents.StandingsPayloadV1{
				GuildID:   result.Success.GuildID,
				RankingID: result.Success.RankingID,
				Standings: result.Success.Standings,
			}, leaderboardevents.StandingsRetrieved)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}

func (h *LeaderboardHandlers) HandleStandingsExportRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleStandingsExportRequest",
		&leaderboardevents.StandingsExportRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*leaderboardevents.StandingsExportRequestPayloadV1)

			result, err := h.service.ExportStandings(ctx, leaderboardservice.ExportStandingsInput{
				GuildID:   req.GuildID,
				RankingID: req.RankingID,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &leaderboardevents.LeaderboardFailedPayloadV1{
					GuildID:   result.Failure.GuildID,
					RankingID: result.Failure.RankingID,
					Reason:    result.Failure.Reason,
				}, leaderboardevents.StandingsExportFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &leaderboardevents.StandingsExportedPayloadV1{
				RankingID: result.Success.RankingID,
				Filename:  result.Success.Filename,
				XLSX:      result.Success.XLSX,
			}, leaderboardevents.StandingsExported)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
