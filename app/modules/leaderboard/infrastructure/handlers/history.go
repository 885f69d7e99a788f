package leaderboardhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	leaderboardservice "github.com/rankforge/rankforge/app/modules/leaderboard/application"
	leaderboardevents "github.com/rankforge/rankforge/app/modules/leaderboard/events"
)

func (h *LeaderboardHandlers) HandleRatingHistoryRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleRatingHistoryRequest",
		&leaderboardevents.RatingHistoryRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*leaderboardevents.RatingHistoryRequestPayloadV1)

			result, err := h.service.GetRatingHistory(ctx, leaderboardservice.GetRatingHistoryInput{
				GuildID:   req.GuildID,
				RankingID: req.RankingID,
				UserID:    req.UserID,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &leaderboardevents.LeaderboardFailedPayloadV1{
					GuildID:   result.Failure.GuildID,
					RankingID: result.Failure.RankingID,
					Reason:    result.Failure.Reason,
				}, leaderboardevents.RatingHistoryFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			points := make([]leaderboardevents.HistoryPointPayload, 0, len(result.Success.Points))
			for _, p := range result.Success.Points {
				points = append(points, leaderboardevents.HistoryPointPayload{
					At:        p.At,
					Rating:    p.Rating,
					Deviation: p.Deviation,
				})
			}
			successMsg, err := h.helpers.CreateResultMessage(msg, &leaderboardevents.RatingHistoryPayloadV1{
				RankingID: result.Success.RankingID,
				UserID:    result.Success.UserID,
				Points:    points,
			}, leaderboardevents.RatingHistoryRetrieved)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}

func (h *LeaderboardHandlers) HandleHistoryChartRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleHistoryChartRequest",
		&leaderboardevents.HistoryChartRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*leaderboardevents.HistoryChartRequestPayloadV1)

			result, err := h.service.RenderHistoryChart(ctx, leaderboardservice.RenderHistoryChartInput{
				GuildID:   req.GuildID,
				RankingID: req.RankingID,
				UserID:    req.UserID,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &leaderboardevents.LeaderboardFailedPayloadV1{
					GuildID:   result.Failure.GuildID,
					RankingID: result.Failure.RankingID,
					Reason:    result.Failure.Reason,
				}, leaderboardevents.HistoryChartFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &leaderboardevents.HistoryChartPayloadV1{
				RankingID: result.Success.RankingID,
				UserID:    result.Success.UserID,
				PNG:       result.Success.PNG,
			}, leaderboardevents.HistoryChartRendered)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
