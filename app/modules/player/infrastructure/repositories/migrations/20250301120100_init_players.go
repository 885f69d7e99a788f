package playermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players and player_ratings tables...")

		if _, err := db.NewCreateTable().Model((*playerdb.Player)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateTable().Model((*playerdb.PlayerRating)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model((*playerdb.PlayerRating)(nil)).
			Index("player_ratings_ranking_rating_idx").
			Column("ranking_id", "rating").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping players and player_ratings tables...")

		if _, err := db.NewDropTable().Model((*playerdb.PlayerRating)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*playerdb.Player)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
