package matchqueue

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	matchservice "github.com/rankforge/rankforge/app/modules/match/application"
	"github.com/rankforge/rankforge/internal/results"
)

// FakeMatchService scripts only the Rescore path the worker exercises.
type FakeMatchService struct {
	RescoreFunc func(ctx context.Context, input matchservice.RescoreInput) (results.OperationResult[matchservice.RescorePayload, matchservice.MatchFailurePayload], error)
}

func (f *FakeMatchService) StartMatch(ctx context.Context, input matchservice.StartMatchInput) (results.OperationResult[matchservice.MatchStartedPayload, matchservice.MatchFailurePayload], error) {
	panic("not scripted")
}

func (f *FakeMatchService) RecordOutcome(ctx context.Context, input matchservice.RecordOutcomeInput) (results.OperationResult[matchservice.MatchFinalizedPayload, matchservice.MatchFailurePayload], error) {
	panic("not scripted")
}

func (f *FakeMatchService) UpdateOutcome(ctx context.Context, input matchservice.UpdateOutcomeInput) (results.OperationResult[matchservice.OutcomeUpdatedPayload, matchservice.MatchFailurePayload], error) {
	panic("not scripted")
}

func (f *FakeMatchService) CancelMatch(ctx context.Context, input matchservice.CancelMatchInput) (results.OperationResult[matchservice.MatchCanceledPayload, matchservice.MatchFailurePayload], error) {
	panic("not scripted")
}

func (f *FakeMatchService) Rescore(ctx context.Context, input matchservice.RescoreInput) (results.OperationResult[matchservice.RescorePayload, matchservice.MatchFailurePayload], error) {
	return f.RescoreFunc(ctx, input)
}

type published struct {
	topic string
	msg   *message.Message
}

// FakeEventBus records published messages.
type FakeEventBus struct {
	Published []published
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, msg *message.Message) error {
	f.Published = append(f.Published, published{topic: topic, msg: msg})
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return nil, nil
}

func (f *FakeEventBus) Publisher() message.Publisher   { return nil }
func (f *FakeEventBus) Subscriber() message.Subscriber { return nil }
func (f *FakeEventBus) Close() error                   { return nil }
