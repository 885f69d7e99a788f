package rankingmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating rankings table...")

		if _, err := db.NewCreateTable().Model((*rankingdb.Ranking)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model((*rankingdb.Ranking)(nil)).
			Index("rankings_guild_id_idx").
			Column("guild_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping rankings table...")

		if _, err := db.NewDropTable().Model((*rankingdb.Ranking)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
