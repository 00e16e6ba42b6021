package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jask/arcadezone/internal/carousel"
	"github.com/jask/arcadezone/internal/catalog"
	"github.com/jask/arcadezone/internal/config"
	"github.com/jask/arcadezone/internal/database"
	"github.com/jask/arcadezone/internal/database/repository"
	"github.com/jask/arcadezone/internal/launch"
	"github.com/jask/arcadezone/internal/loader"
	"github.com/jask/arcadezone/internal/schedule"
	"github.com/jask/arcadezone/internal/service"
	"github.com/jask/arcadezone/internal/tui"
)

func main() {
	var (
		source       = pflag.String("source", "", "catalog source: builtin, file or sqlite")
		writeConfig  = pflag.Bool("write-config", false, "write the effective config file and exit")
		importPath   = pflag.String("import-catalog", "", "import a TOML catalog into the sqlite catalog and exit")
		resetCatalog = pflag.Bool("reset-catalog", false, "restore the built-in games in the sqlite catalog and exit")
		exportPath   = pflag.String("export-catalog", "", "write the active catalog as TOML and exit")
	)
	pflag.Parse()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *source != "" {
		cfg.Catalog.Source = strings.ToLower(strings.TrimSpace(*source))
	}

	if *writeConfig {
		path, err := config.Save(cfg)
		if err != nil {
			log.Fatalf("write config: %v", err)
		}
		fmt.Println(path)
		return
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	svc := &service.CatalogService{Log: logger}
	if cfg.Catalog.Source == service.SourceSQLite || *importPath != "" || *resetCatalog {
		db, err := openCatalogDB(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("catalog db: %v", err)
		}
		defer db.Close()
		svc.Games = repository.NewGameRepo(db)
	}

	switch {
	case *importPath != "":
		res, err := svc.ImportFile(ctx, *importPath)
		if err != nil {
			log.Fatalf("import: %v", err)
		}
		fmt.Printf("imported %d games, disabled %d\n", res.Imported, res.Disabled)
		return
	case *resetCatalog:
		if err := svc.Reset(ctx); err != nil {
			log.Fatalf("reset: %v", err)
		}
		fmt.Println("catalog reset to built-in games")
		return
	}

	cat, err := svc.Load(ctx, cfg.Catalog.Source, cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	if *exportPath != "" {
		if err := catalog.WriteFile(*exportPath, cat); err != nil {
			log.Fatalf("export: %v", err)
		}
		fmt.Printf("exported %d games to %s\n", cat.Len(), *exportPath)
		return
	}

	posted := schedule.NewPosted(nil)
	ctrl, err := launch.NewController(launch.Options{
		Catalog:   cat,
		Scheduler: posted,
		Loader: loader.Config{
			Duration: cfg.Loader.Duration,
			Interval: cfg.Loader.Interval,
			Settle:   cfg.Loader.Settle,
		},
		Layouts: carousel.LayoutTable{
			carousel.Compact: {ItemWidth: cfg.Carousel.Compact.ItemWidth, ItemGap: cfg.Carousel.Compact.ItemGap},
			carousel.Wide:    {ItemWidth: cfg.Carousel.Wide.ItemWidth, ItemGap: cfg.Carousel.Wide.ItemGap},
		},
		Breakpoint:     cfg.Carousel.Breakpoint,
		SwipeThreshold: cfg.Carousel.SwipeThreshold,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("controller: %v", err)
	}
	defer ctrl.Close()

	app := tui.New(ctrl, posted, tui.Options{
		CellUnits:  cfg.UI.CellUnits,
		TargetBase: cfg.UI.TargetBase,
		Logger:     logger,
	})
	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(app, opts...)
	posted.Bind(func(f schedule.Fire) { p.Send(f) })

	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
	posted.StopAll()
}

func openCatalogDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if err := database.RunMigrations(cfg.Path, cfg.Migrations); err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Path)
	if err != nil {
		return nil, err
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return db, nil
}

// openLogger sends slog output to the configured file; the terminal belongs
// to the UI. An empty path discards logs.
func openLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, handlerOpts)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, handlerOpts)), func() { _ = f.Close() }, nil
}
