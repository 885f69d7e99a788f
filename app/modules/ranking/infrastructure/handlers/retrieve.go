package rankinghandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	rankingservice "github.com/rankforge/rankforge/app/modules/ranking/application"
	rankingevents "github.com/rankforge/rankforge/app/modules/ranking/events"
)

func (h *RankingHandlers) HandleGetRankingRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleGetRankingRequest",
		&rankingevents.RankingGetRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*rankingevents.RankingGetRequestPayloadV1)

			result, err := h.service.GetRanking(ctx, rankingservice.GetRankingInput{
				GuildID:   req.GuildID,
				RankingID: req.RankingID,
			})
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &rankingevents.RankingFailedPayloadV1{
					GuildID:   result.Failure.GuildID,
					RankingID: result.Failure.RankingID,
					Reason:    result.Failure.Reason,
				}, rankingevents.RankingGetFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &rankingevents.RankingRetrievedPayloadV1{
				Ranking: result.Success.Ranking,
			}, rankingevents.RankingRetrieved)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}

func (h *RankingHandlers) HandleListRankingsRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleListRankingsRequest",
		&rankingevents.RankingListRequestPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			req := payload.(*rankingevents.RankingListRequestPayloadV1)

			result, err := h.service.ListRankings(ctx, req.GuildID)
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				failureMsg, errCreate := h.helpers.CreateResultMessage(msg, &rankingevents.RankingFailedPayloadV1{
					GuildID: result.Failure.GuildID,
					Reason:  result.Failure.Reason,
				}, rankingevents.RankingListFailed)
				if errCreate != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errCreate)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, &rankingevents.RankingListedPayloadV1{
				GuildID:  result.Success.GuildID,
				Rankings: result.Success.Rankings,
			}, rankingevents.RankingListed)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrappedHandler(msg)
}
