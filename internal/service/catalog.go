package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jask/arcadezone/internal/catalog"
	"github.com/jask/arcadezone/internal/database"
	"github.com/jask/arcadezone/internal/database/repository"
)

// Catalog sources accepted in config.
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceSQLite  = "sqlite"
)

var ErrUnknownSource = errors.New("unknown catalog source")

// CatalogService resolves the configured source into an immutable Catalog.
// Games is only needed for the sqlite source.
type CatalogService struct {
	Games *repository.GameRepo
	Log   *slog.Logger
}

// Load builds the catalog from source. path is the TOML file for the file
// source and ignored otherwise.
func (s *CatalogService) Load(ctx context.Context, source, path string) (*catalog.Catalog, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	switch source {
	case SourceBuiltin, "":
		c, err = catalog.New(catalog.DefaultEntries())
	case SourceFile:
		c, err = catalog.LoadFile(path)
	case SourceSQLite:
		c, err = s.fromDB(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}
	s.logger().Info("catalog loaded", "source", source, "games", c.Len())
	return c, nil
}

func (s *CatalogService) fromDB(ctx context.Context) (*catalog.Catalog, error) {
	if s.Games == nil {
		return nil, fmt.Errorf("catalog: db not configured")
	}
	games, err := s.Games.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]catalog.Entry, 0, len(games))
	for _, g := range games {
		theme, err := catalog.ParseTheme(g.Theme)
		if err != nil {
			return nil, fmt.Errorf("game %q: %w", g.Slug, err)
		}
		entries = append(entries, catalog.Entry{
			ID:          g.Slug,
			Title:       g.Title,
			Description: g.Description,
			Theme:       theme,
			Target:      g.Target,
		})
	}
	return catalog.New(entries)
}

func (s *CatalogService) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// ImportResult counts rows written by ImportFile.
type ImportResult struct {
	Imported int
	Disabled int
}

// ImportFile validates a TOML catalog and writes it to the games table in one
// transaction. Games missing from the file are disabled, not deleted; file
// order becomes carousel order.
func (s *CatalogService) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	var res ImportResult
	if s.Games == nil {
		return res, fmt.Errorf("import: db not configured")
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		return res, err
	}
	existing, err := s.Games.List(ctx)
	if err != nil {
		return res, err
	}
	err = database.WithTx(ctx, s.Games.DB(), func(tx *sql.Tx) error {
		for idx, e := range c.Entries() {
			g := gameFor(e, idx)
			if err := repository.UpsertGameTx(ctx, tx, g); err != nil {
				return fmt.Errorf("import %s: %w", e.ID, err)
			}
			res.Imported++
		}
		for _, g := range existing {
			if _, ok := c.Lookup(g.Slug); ok || !g.Enabled {
				continue
			}
			g.Enabled = false
			if err := repository.UpsertGameTx(ctx, tx, g); err != nil {
				return fmt.Errorf("disable %s: %w", g.Slug, err)
			}
			res.Disabled++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	s.logger().Info("catalog imported", "path", path, "imported", res.Imported, "disabled", res.Disabled)
	return res, nil
}

// Reset wipes the games table and reseeds the built-in lineup.
func (s *CatalogService) Reset(ctx context.Context) error {
	if s.Games == nil {
		return fmt.Errorf("reset: db not configured")
	}
	db := s.Games.DB()
	if err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM games")
		return err
	}); err != nil {
		return fmt.Errorf("reset games: %w", err)
	}
	_, _ = db.ExecContext(ctx, "VACUUM")
	return database.SeedDefaults(ctx, db)
}

func gameFor(e catalog.Entry, order int) repository.Game {
	return repository.Game{
		ID:          database.GameID(e.ID),
		Slug:        e.ID,
		Title:       e.Title,
		Description: e.Description,
		Theme:       string(e.Theme),
		Target:      e.Target,
		SortOrder:   order,
		Enabled:     true,
	}
}
