package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/arcadezone/internal/catalog"
	"github.com/jask/arcadezone/internal/database/repository"
)

// GameID derives the stable row key for a catalog slug.
func GameID(slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("game:"+slug)).String()
}

// SeedDefaults fills an empty games table with the built-in lineup.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	games := repository.NewGameRepo(db)
	n, err := games.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for idx, e := range catalog.DefaultEntries() {
			g := repository.Game{
				ID:          GameID(e.ID),
				Slug:        e.ID,
				Title:       e.Title,
				Description: e.Description,
				Theme:       string(e.Theme),
				Target:      e.Target,
				SortOrder:   idx,
				Enabled:     true,
			}
			if err := repository.UpsertGameTx(ctx, tx, g); err != nil {
				return err
			}
		}
		return nil
	})
}
