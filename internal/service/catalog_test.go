package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/arcadezone/internal/catalog"
	"github.com/jask/arcadezone/internal/database"
	"github.com/jask/arcadezone/internal/database/repository"
)

const twoGames = `
[[game]]
id = "pong"
title = "PONG"
theme = "pink"
target = "/pong"

[[game]]
id = "spirited"
title = "SPIRITED REMIX"
theme = "cyan"
target = "/spirited/remix"
`

func newDBService(t *testing.T) *CatalogService {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath, ""))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))
	return &CatalogService{Games: repository.NewGameRepo(db)}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadBuiltin(t *testing.T) {
	t.Parallel()
	svc := &CatalogService{}
	for _, src := range []string{"", SourceBuiltin} {
		c, err := svc.Load(context.Background(), src, "")
		require.NoError(t, err)
		require.Equal(t, catalog.DefaultEntries(), c.Entries())
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	svc := &CatalogService{}
	c, err := svc.Load(context.Background(), SourceFile, writeFile(t, twoGames))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	require.Equal(t, "pong", c.At(0).ID)

	_, err = svc.Load(context.Background(), SourceFile, filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadUnknownSource(t *testing.T) {
	t.Parallel()
	_, err := (&CatalogService{}).Load(context.Background(), "ftp", "")
	require.ErrorIs(t, err, ErrUnknownSource)
}

func TestLoadSQLiteWithoutDB(t *testing.T) {
	t.Parallel()
	_, err := (&CatalogService{}).Load(context.Background(), SourceSQLite, "")
	require.Error(t, err)
}

func TestLoadSQLiteSeeded(t *testing.T) {
	t.Parallel()
	svc := newDBService(t)
	c, err := svc.Load(context.Background(), SourceSQLite, "")
	require.NoError(t, err)
	require.Equal(t, catalog.DefaultEntries(), c.Entries())
}

func TestImportFileReplacesLineup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newDBService(t)

	res, err := svc.ImportFile(ctx, writeFile(t, twoGames))
	require.NoError(t, err)
	require.Equal(t, 2, res.Imported)
	require.Equal(t, 3, res.Disabled, "the other built-ins are disabled")

	c, err := svc.Load(ctx, SourceSQLite, "")
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	require.Equal(t, "pong", c.At(0).ID)
	require.Equal(t, "SPIRITED REMIX", c.At(1).Title)

	all, err := svc.Games.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestImportFileInvalidLeavesDBUntouched(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newDBService(t)

	_, err := svc.ImportFile(ctx, writeFile(t, "[[game]]\nid = \"x\"\ntitle = \"X\"\ntheme = \"plaid\"\ntarget = \"/x\"\n"))
	require.ErrorIs(t, err, catalog.ErrInvalidEntry)

	c, err := svc.Load(ctx, SourceSQLite, "")
	require.NoError(t, err)
	require.Equal(t, catalog.DefaultEntries(), c.Entries())
}

func TestResetRestoresDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newDBService(t)

	_, err := svc.ImportFile(ctx, writeFile(t, twoGames))
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx))

	c, err := svc.Load(ctx, SourceSQLite, "")
	require.NoError(t, err)
	require.Equal(t, catalog.DefaultEntries(), c.Entries())
}
