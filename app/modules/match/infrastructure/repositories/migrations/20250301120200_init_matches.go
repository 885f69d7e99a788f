package matchmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	matchdb "github.com/rankforge/rankforge/app/modules/match/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating matches table...")

		if _, err := db.NewCreateTable().Model((*matchdb.Match)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// The rescorer replays in (time_finished, id) order; this index backs
		// both the replay scan and the last-played lookback.
		if _, err := db.NewCreateIndex().
			Model((*matchdb.Match)(nil)).
			Index("matches_ranking_finished_idx").
			Column("ranking_id", "status", "time_finished", "id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping matches table...")

		if _, err := db.NewDropTable().Model((*matchdb.Match)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
