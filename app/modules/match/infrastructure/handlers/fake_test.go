package matchhandlers

import (
	"context"

	matchservice "github.com/rankforge/rankforge/app/modules/match/application"
	"github.com/rankforge/rankforge/internal/results"
)

// FakeMatchService provides a programmable stub for the matchservice.Service
// interface.
type FakeMatchService struct {
	StartMatchFunc    func(ctx context.Context, input matchservice.StartMatchInput) (results.OperationResult[matchservice.MatchStartedPayload, matchservice.MatchFailurePayload], error)
	RecordOutcomeFunc func(ctx context.Context, input matchservice.RecordOutcomeInput) (results.OperationResult[matchservice.MatchFinalizedPayload, matchservice.MatchFailurePayload], error)
	UpdateOutcomeFunc func(ctx context.Context, input matchservice.UpdateOutcomeInput) (results.OperationResult[matchservice.OutcomeUpdatedPayload, matchservice.MatchFailurePayload], error)
	CancelMatchFunc   func(ctx context.Context, input matchservice.CancelMatchInput) (results.OperationResult[matchservice.MatchCanceledPayload, matchservice.MatchFailurePayload], error)
	RescoreFunc       func(ctx context.Context, input matchservice.RescoreInput) (results.OperationResult[matchservice.RescorePayload, matchservice.MatchFailurePayload], error)
}

var _ matchservice.Service = (*FakeMatchService)(nil)

func (f *FakeMatchService) StartMatch(ctx context.Context, input matchservice.StartMatchInput) (results.OperationResult[matchservice.MatchStartedPayload, matchservice.MatchFailurePayload], error) {
	if f.StartMatchFunc != nil {
		return f.StartMatchFunc(ctx, input)
	}
	return results.OperationResult[matchservice.MatchStartedPayload, matchservice.MatchFailurePayload]{}, nil
}

func (f *FakeMatchService) RecordOutcome(ctx context.Context, input matchservice.RecordOutcomeInput) (results.OperationResult[matchservice.MatchFinalizedPayload, matchservice.MatchFailurePayload], error) {
	if f.RecordOutcomeFunc != nil {
		return f.RecordOutcomeFunc(ctx, input)
	}
	return results.OperationResult[matchservice.MatchFinalizedPayload, matchservice.MatchFailurePayload]{}, nil
}

func (f *FakeMatchService) UpdateOutcome(ctx context.Context, input matchservice.UpdateOutcomeInput) (results.OperationResult[matchservice.OutcomeUpdatedPayload, matchservice.MatchFailurePayload], error) {
	if f.UpdateOutcomeFunc != nil {
		return f.UpdateOutcomeFunc(ctx, input)
	}
	return results.OperationResult[matchservice.OutcomeUpdatedPayload, matchservice.MatchFailurePayload]{}, nil
}

func (f *FakeMatchService) CancelMatch(ctx context.Context, input matchservice.CancelMatchInput) (results.OperationResult[matchservice.MatchCanceledPayload, matchservice.MatchFailurePayload], error) {
	if f.CancelMatchFunc != nil {
		return f.CancelMatchFunc(ctx, input)
	}
	return results.OperationResult[matchservice.MatchCanceledPayload, matchservice.MatchFailurePayload]{}, nil
}

func (f *FakeMatchService) Rescore(ctx context.Context, input matchservice.RescoreInput) (results.OperationResult[matchservice.RescorePayload, matchservice.MatchFailurePayload], error) {
	if f.RescoreFunc != nil {
		return f.RescoreFunc(ctx, input)
	}
	return results.OperationResult[matchservice.RescorePayload, matchservice.MatchFailurePayload]{}, nil
}
