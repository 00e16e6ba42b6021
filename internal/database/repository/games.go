package repository

import (
	"context"
	"database/sql"
)

// GameRepo handles games.
type GameRepo struct {
	db *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db}
}

// DB exposes the handle for callers that need a transaction.
func (r *GameRepo) DB() *sql.DB { return r.db }

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const upsertGame = `
	INSERT INTO games(id, slug, title, description, theme, target, sort_order, enabled)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 slug=excluded.slug,
	 title=excluded.title,
	 description=excluded.description,
	 theme=excluded.theme,
	 target=excluded.target,
	 sort_order=excluded.sort_order,
	 enabled=excluded.enabled,
	 updated_at=CURRENT_TIMESTAMP;
	`

func upsert(ctx context.Context, ex execer, g Game) error {
	_, err := ex.ExecContext(ctx, upsertGame,
		g.ID, g.Slug, g.Title, g.Description, g.Theme, g.Target, g.SortOrder, g.Enabled)
	return err
}

func (r *GameRepo) Upsert(ctx context.Context, g Game) error {
	return upsert(ctx, r.db, g)
}

// UpsertGameTx is Upsert inside an open transaction.
func UpsertGameTx(ctx context.Context, tx *sql.Tx, g Game) error {
	return upsert(ctx, tx, g)
}

func (r *GameRepo) SetEnabled(ctx context.Context, slug string, enabled bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE games SET enabled=?, updated_at=CURRENT_TIMESTAMP WHERE slug=?`, enabled, slug)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *GameRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n)
	return n, err
}

// ListEnabled returns enabled games in carousel order.
func (r *GameRepo) ListEnabled(ctx context.Context) ([]Game, error) {
	return r.list(ctx, `WHERE enabled = 1`)
}

func (r *GameRepo) List(ctx context.Context) ([]Game, error) {
	return r.list(ctx, "")
}

func (r *GameRepo) list(ctx context.Context, where string) ([]Game, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, slug, title, description, theme, target, sort_order, enabled, created_at, updated_at
	FROM games `+where+`
	ORDER BY sort_order, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.Slug, &g.Title, &g.Description, &g.Theme, &g.Target,
			&g.SortOrder, &g.Enabled, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
