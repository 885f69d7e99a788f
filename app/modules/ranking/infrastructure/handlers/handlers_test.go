package rankinghandlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	matchevents "github.com/rankforge/rankforge/app/modules/match/events"
	rankingservice "github.com/rankforge/rankforge/app/modules/ranking/application"
	rankingevents "github.com/rankforge/rankforge/app/modules/ranking/events"
	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/observability"
	"github.com/rankforge/rankforge/internal/rating"
	"github.com/rankforge/rankforge/internal/results"
	"github.com/rankforge/rankforge/internal/utils"
)

func newHandlers(svc rankingservice.Service) Handlers {
	obs := observability.NewTestObservability()
	return NewRankingHandlers(svc, obs.Logger, obs.Tracer("test"), utils.NewHelperService(), observability.NoOpMetrics{})
}

func newRequestMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}
	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set(attr.CorrelationIDKey, "corr-123")
	return msg
}

func TestHandleCreateRankingRequest_Success(t *testing.T) {
	rankingID := sharedtypes.NewRankingID()

	var gotInput rankingservice.CreateRankingInput
	svc := &FakeRankingService{
		CreateRankingFunc: func(ctx context.Context, input rankingservice.CreateRankingInput) (results.OperationResult[rankingservice.RankingCreatedPayload, rankingservice.RankingFailurePayload], error) {
			gotInput = input
			return results.Success[rankingservice.RankingCreatedPayload, rankingservice.RankingFailurePayload](&rankingservice.RankingCreatedPayload{
				Ranking: &rankingtypes.Ranking{ID: rankingID, GuildID: input.GuildID, Name: input.Name},
			}), nil
		},
	}

	msg := newRequestMessage(t, rankingevents.RankingCreateRequestPayloadV1{
		GuildID:  "guild-1",
		Name:     "weekly ladder",
		Strategy: rating.StrategyGlicko2,
	})

	out, err := newHandlers(svc).HandleCreateRankingRequest(msg)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result message, got %d", len(out))
	}
	if topic := out[0].Metadata.Get(utils.TopicMetadataKey); topic != rankingevents.RankingCreated {
		t.Errorf("result topic = %q, want %q", topic, rankingevents.RankingCreated)
	}
	if cid := out[0].Metadata.Get(attr.CorrelationIDKey); cid != "corr-123" {
		t.Errorf("correlation id not carried over, got %q", cid)
	}
	if gotInput.Name != "weekly ladder" || gotInput.Strategy != rating.StrategyGlicko2 {
		t.Errorf("service input not mapped: %+v", gotInput)
	}

	var payload rankingevents.RankingCreatedPayloadV1
	if err := json.Unmarshal(out[0].Payload, &payload); err != nil {
		t.Fatalf("unmarshal result payload: %v", err)
	}
	if payload.Ranking.ID != rankingID {
		t.Errorf("ranking id = %s, want %s", payload.Ranking.ID, rankingID)
	}
}

func TestHandleCreateRankingRequest_DomainFailure(t *testing.T) {
	svc := &FakeRankingService{
		CreateRankingFunc: func(ctx context.Context, input rankingservice.CreateRankingInput) (results.OperationResult[rankingservice.RankingCreatedPayload, rankingservice.RankingFailurePayload], error) {
			return results.Failure[rankingservice.RankingCreatedPayload](&rankingservice.RankingFailurePayload{
				GuildID: input.GuildID,
				Reason:  rankingservice.ErrNameRequired.Error(),
			}), nil
		},
	}

	msg := newRequestMessage(t, rankingevents.RankingCreateRequestPayloadV1{GuildID: "guild-1"})

	out, err := newHandlers(svc).HandleCreateRankingRequest(msg)
	if err != nil {
		t.Fatalf("domain failure must not surface as handler error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 failure message, got %d", len(out))
	}
	if topic := out[0].Metadata.Get(utils.TopicMetadataKey); topic != rankingevents.RankingCreateFailed {
		t.Errorf("failure topic = %q, want %q", topic, rankingevents.RankingCreateFailed)
	}
}

func TestHandleUpdateConfigRequest_EmitsRescoreWhenRequired(t *testing.T) {
	rankingID := sharedtypes.NewRankingID()
	svc := &FakeRankingService{
		UpdateConfigFunc: func(ctx context.Context, input rankingservice.UpdateConfigInput) (results.OperationResult[rankingservice.ConfigUpdatedPayload, rankingservice.RankingFailurePayload], error) {
			return results.Success[rankingservice.ConfigUpdatedPayload, rankingservice.RankingFailurePayload](&rankingservice.ConfigUpdatedPayload{
				Ranking:         &rankingtypes.Ranking{ID: input.RankingID, GuildID: input.GuildID},
				RescoreRequired: true,
			}), nil
		},
	}

	tau := 0.8
	msg := newRequestMessage(t, rankingevents.RankingUpdateConfigRequestPayloadV1{
		GuildID:   "guild-1",
		RankingID: rankingID,
		Tau:       &tau,
	})

	out, err := newHandlers(svc).HandleUpdateConfigRequest(msg)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected result + rescore request, got %d messages", len(out))
	}
	if topic := out[0].Metadata.Get(utils.TopicMetadataKey); topic != rankingevents.RankingConfigUpdated {
		t.Errorf("result topic = %q, want %q", topic, rankingevents.RankingConfigUpdated)
	}
	if topic := out[1].Metadata.Get(utils.TopicMetadataKey); topic != matchevents.MatchRescoreRequest {
		t.Errorf("second topic = %q, want %q", topic, matchevents.MatchRescoreRequest)
	}

	var rescore matchevents.MatchRescoreRequestPayloadV1
	if err := json.Unmarshal(out[1].Payload, &rescore); err != nil {
		t.Fatalf("unmarshal rescore payload: %v", err)
	}
	if !rescore.ResetToInitial {
		t.Error("rescore request must reset to initial ratings")
	}
	if rescore.RankingID != rankingID {
		t.Errorf("rescore ranking id = %s, want %s", rescore.RankingID, rankingID)
	}
}

func TestHandleUpdateConfigRequest_NoRescoreForNameChange(t *testing.T) {
	svc := &FakeRankingService{
		UpdateConfigFunc: func(ctx context.Context, input rankingservice.UpdateConfigInput) (results.OperationResult[rankingservice.ConfigUpdatedPayload, rankingservice.RankingFailurePayload], error) {
			return results.Success[rankingservice.ConfigUpdatedPayload, rankingservice.RankingFailurePayload](&rankingservice.ConfigUpdatedPayload{
				Ranking:         &rankingtypes.Ranking{ID: input.RankingID, GuildID: input.GuildID},
				RescoreRequired: false,
			}), nil
		},
	}

	name := "renamed"
	msg := newRequestMessage(t, rankingevents.RankingUpdateConfigRequestPayloadV1{
		GuildID:   "guild-1",
		RankingID: sharedtypes.NewRankingID(),
		Name:      &name,
	})

	out, err := newHandlers(svc).HandleUpdateConfigRequest(msg)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected only the result message, got %d", len(out))
	}
}

func TestHandleChangeStrategyRequest_AlwaysEmitsRescore(t *testing.T) {
	rankingID := sharedtypes.NewRankingID()
	svc := &FakeRankingService{
		ChangeStrategyFunc: func(ctx context.Context, input rankingservice.ChangeStrategyInput) (results.OperationResult[rankingservice.StrategyChangedPayload, rankingservice.RankingFailurePayload], error) {
			return results.Success[rankingservice.StrategyChangedPayload, rankingservice.RankingFailurePayload](&rankingservice.StrategyChangedPayload{
				Ranking: &rankingtypes.Ranking{ID: input.RankingID, GuildID: input.GuildID, Strategy: input.Strategy},
			}), nil
		},
	}

	msg := newRequestMessage(t, rankingevents.RankingChangeStrategyRequestPayloadV1{
		GuildID:   "guild-1",
		RankingID: rankingID,
		Strategy:  rating.StrategyWinDiff,
	})

	out, err := newHandlers(svc).HandleChangeStrategyRequest(msg)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected result + rescore request, got %d messages", len(out))
	}
	if topic := out[0].Metadata.Get(utils.TopicMetadataKey); topic != rankingevents.RankingStrategyChanged {
		t.Errorf("result topic = %q, want %q", topic, rankingevents.RankingStrategyChanged)
	}
	if topic := out[1].Metadata.Get(utils.TopicMetadataKey); topic != matchevents.MatchRescoreRequest {
		t.Errorf("second topic = %q, want %q", topic, matchevents.MatchRescoreRequest)
	}
}

func TestHandleGetRankingRequest_InfraError(t *testing.T) {
	svc := &FakeRankingService{
		GetRankingFunc: func(ctx context.Context, input rankingservice.GetRankingInput) (results.OperationResult[rankingservice.RankingRetrievedPayload, rankingservice.RankingFailurePayload], error) {
			return results.OperationResult[rankingservice.RankingRetrievedPayload, rankingservice.RankingFailurePayload]{}, errors.New("db down")
		},
	}

	msg := newRequestMessage(t, rankingevents.RankingGetRequestPayloadV1{
		GuildID:   "guild-1",
		RankingID: sharedtypes.NewRankingID(),
	})

	if _, err := newHandlers(svc).HandleGetRankingRequest(msg); err == nil {
		t.Fatal("infra error must surface so the message is retried")
	}
}

func TestHandleListRankingsRequest_BadPayload(t *testing.T) {
	msg := message.NewMessage(uuid.New().String(), []byte("not json"))
	if _, err := newHandlers(&FakeRankingService{}).HandleListRankingsRequest(msg); err == nil {
		t.Fatal("expected unmarshal error")
	}
}
