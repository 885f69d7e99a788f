package playerhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	playerservice "github.com/rankforge/rankforge/app/modules/player/application"
	playerevents "github.com/rankforge/rankforge/app/modules/player/events"
	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/observability"
	"github.com/rankforge/rankforge/internal/rating"
	"github.com/rankforge/rankforge/internal/results"
	"github.com/rankforge/rankforge/internal/utils"
)

func newHandlers(svc playerservice.Service) Handlers {
	obs := observability.NewTestObservability()
	return NewPlayerHandlers(svc, obs.Logger, obs.Tracer("test"), utils.NewHelperService(), observability.NoOpMetrics{})
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

func TestHandleRegisterPlayerRequest_Success(t *testing.T) {
	rankingID := sharedtypes.NewRankingID()

	var gotInput playerservice.RegisterPlayerInput
	svc := &FakePlayerService{
		RegisterPlayerFunc: func(ctx context.Context, input playerservice.RegisterPlayerInput) (results.OperationResult[playerservice.PlayerRegisteredPayload, playerservice.PlayerFailurePayload], error) {
			gotInput = input
			initial := rating.Rating{Rating: 1500, Deviation: 350, Volatility: 0.06}
			return results.Success[playerservice.PlayerRegisteredPayload, playerservice.PlayerFailurePayload](&playerservice.PlayerRegisteredPayload{
				Player: &playerdb.Player{
					GuildID:     input.GuildID,
					UserID:      input.UserID,
					DisplayName: input.DisplayName,
				},
				InitialRating: &initial,
			}), nil
		},
	}

	msg := newRequestMessage(t, playerevents.PlayerRegisterRequestPayloadV1{
		GuildID:     "guild-1",
		UserID:      "alice",
		DisplayName: "Alice",
		RankingID:   rankingID,
	})

	out, err := newHandlers(svc).HandleRegisterPlayerRequest(msg)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result message, got %d", len(out))
	}
	if topic := out[0].Metadata.Get(utils.TopicMetadataKey); topic != playerevents.PlayerRegistered {
		t.Errorf("result topic = %q, want %q", topic, playerevents.PlayerRegistered)
	}
	if cid := out[0].Metadata.Get(attr.CorrelationIDKey); cid != "corr-123" {
		t.Errorf("correlation id not carried over, got %q", cid)
	}
	if gotInput.UserID != "alice" || gotInput.RankingID != rankingID {
		t.Errorf("service input not mapped: %+v", gotInput)
	}

	var payload playerevents.PlayerRegisteredPayloadV1
	if err := json.Unmarshal(out[0].Payload, &payload); err != nil {
		t.Fatalf("unmarshal result payload: %v", err)
	}
	if payload.InitialRating == nil || payload.InitialRating.Rating != 1500 {
		t.Errorf("initial rating not carried: %+v", payload.InitialRating)
	}
}

func TestHandleRegisterPlayerRequest_DomainFailure(t *testing.T) {
	svc := &FakePlayerService{
		RegisterPlayerFunc: func(ctx context.Context, input playerservice.RegisterPlayerInput) (results.OperationResult[playerservice.PlayerRegisteredPayload, playerservice.PlayerFailurePayload], error) {
			return results.Failure[playerservice.PlayerRegisteredPayload](&playerservice.PlayerFailurePayload{
				GuildID: input.GuildID,
				Reason:  playerservice.ErrUserIDRequired.Error(),
			}), nil
		},
	}

	msg := newRequestMessage(t, playerevents.PlayerRegisterRequestPayloadV1{GuildID: "guild-1"})

	out, err := newHandlers(svc).HandleRegisterPlayerRequest(msg)
	if err != nil {
		t.Fatalf("domain failure must not surface as handler error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 failure message, got %d", len(out))
	}
	if topic := out[0].Metadata.Get(utils.TopicMetadataKey); topic != playerevents.PlayerRegisterFailed {
		t.Errorf("failure topic = %q, want %q", topic, playerevents.PlayerRegisterFailed)
	}
}

func TestHandleGetRatingRequest_InfraError(t *testing.T) {
	svc := &FakePlayerService{
		GetPlayerRatingFunc: func(ctx context.Context, input playerservice.GetPlayerRatingInput) (results.OperationResult[playerservice.PlayerRatingPayload, playerservice.PlayerFailurePayload], error) {
			return results.OperationResult[playerservice.PlayerRatingPayload, playerservice.PlayerFailurePayload]{}, errors.New("db down")
		},
	}

	msg := newRequestMessage(t, playerevents.PlayerGetRatingRequestPayloadV1{
		GuildID:   "guild-1",
		RankingID: sharedtypes.NewRankingID(),
		UserID:    "alice",
	})

	if _, err := newHandlers(svc).HandleGetRatingRequest(msg); err == nil {
		t.Fatal("infra error must surface so the message is retried")
	}
}

func TestHandleListPlayersRequest_Success(t *testing.T) {
	svc := &FakePlayerService{
		ListPlayersFunc: func(ctx context.Context, input playerservice.ListPlayersInput) (results.OperationResult[playerservice.PlayerListPayload, playerservice.PlayerFailurePayload], error) {
			return results.Success[playerservice.PlayerListPayload, playerservice.PlayerFailurePayload](&playerservice.PlayerListPayload{
				GuildID: input.GuildID,
				Players: []*playerdb.Player{
					{GuildID: input.GuildID, UserID: "alice", DisplayName: "Alice"},
					{GuildID: input.GuildID, UserID: "bob"},
				},
			}), nil
		},
	}

	msg := newRequestMessage(t, playerevents.PlayerListRequestPayloadV1{GuildID: "guild-1"})

	out, err := newHandlers(svc).HandleListPlayersRequest(msg)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result message, got %d", len(out))
	}

	var payload playerevents.PlayerListedPayloadV1
	if err := json.Unmarshal(out[0].Payload, &payload); err != nil {
		t.Fatalf("unmarshal result payload: %v", err)
	}
	if len(payload.Players) != 2 {
		t.Errorf("listed %d players, want 2", len(payload.Players))
	}
}
