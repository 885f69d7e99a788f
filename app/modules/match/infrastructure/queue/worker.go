package matchqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	matchservice "github.com/rankforge/rankforge/app/modules/match/application"
	matchevents "github.com/rankforge/rankforge/app/modules/match/events"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/utils"
)

// RescoreWorker executes queued rescore jobs against the match service and
// announces the result on the event bus.
type RescoreWorker struct {
	river.WorkerDefaults[RescoreJob]

	service  matchservice.Service
	eventBus eventbus.EventBus
	helpers  utils.Helpers
	logger   *slog.Logger
}

// NewRescoreWorker creates a new RescoreWorker.
func NewRescoreWorker(service matchservice.Service, eventBus eventbus.EventBus, helpers utils.Helpers, logger *slog.Logger) *RescoreWorker {
	return &RescoreWorker{
		service:  service,
		eventBus: eventBus,
		helpers:  helpers,
		logger:   logger,
	}
}

func (w *RescoreWorker) Work(ctx context.Context, job *river.Job[RescoreJob]) error {
	args := job.Args

	w.logger.InfoContext(ctx, "Working rescore job",
		attr.RankingID("ranking_id", args.RankingID),
		attr.Bool("reset", args.ResetToInitial),
		attr.Int("attempt", job.Attempt),
	)

	result, err := w.service.Rescore(ctx, matchservice.RescoreInput{
		GuildID:        args.GuildID,
		RankingID:      args.RankingID,
		Since:          args.Since,
		ResetToInitial: args.ResetToInitial,
	})
	if err != nil {
		return fmt.Errorf("rescore job for ranking %s: %w", args.RankingID, err)
	}

	if result.IsFailure() {
		// Domain failures will not heal on retry; announce and finish the job.
		msg, errCreate := w.helpers.CreateNewMessage(&matchevents.MatchFailedPayloadV1{
			GuildID: args.GuildID,
			Reason:  result.Failure.Reason,
		}, matchevents.MatchRescoreFailed)
		if errCreate != nil {
			return fmt.Errorf("creating rescore failure message: %w", errCreate)
		}
		return w.eventBus.Publish(ctx, matchevents.MatchRescoreFailed, msg)
	}

	msg, err := w.helpers.CreateNewMessage(&matchevents.MatchRescoredPayloadV1{
		RankingID:       result.Success.RankingID,
		RescoredMatches: result.Success.RescoredMatches,
		PlayersUpdated:  result.Success.PlayersUpdated,
	}, matchevents.MatchRescored)
	if err != nil {
		return fmt.Errorf("creating rescore result message: %w", err)
	}
	return w.eventBus.Publish(ctx, matchevents.MatchRescored, msg)
}
