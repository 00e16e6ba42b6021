package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	Loader   LoaderConfig   `mapstructure:"loader"`
	Carousel CarouselConfig `mapstructure:"carousel"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// CatalogConfig picks where the game list comes from: "builtin", "file" or "sqlite".
type CatalogConfig struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

// DatabaseConfig holds sqlite settings for the sqlite catalog source. An empty
// Migrations directory means the migrations built into the binary.
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	Migrations string `mapstructure:"migrations"`
}

// LoaderConfig paces the boot animation.
type LoaderConfig struct {
	Duration time.Duration `mapstructure:"duration"`
	Interval time.Duration `mapstructure:"interval"`
	Settle   time.Duration `mapstructure:"settle"`
}

// CarouselConfig holds track metrics in distance units.
type CarouselConfig struct {
	Breakpoint     float64      `mapstructure:"breakpoint"`
	SwipeThreshold float64      `mapstructure:"swipe_threshold"`
	Compact        LayoutConfig `mapstructure:"compact"`
	Wide           LayoutConfig `mapstructure:"wide"`
}

type LayoutConfig struct {
	ItemWidth float64 `mapstructure:"item_width"`
	ItemGap   float64 `mapstructure:"item_gap"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// CellUnits is how many distance units one terminal column spans.
	CellUnits  float64 `mapstructure:"cell_units"`
	TargetBase string  `mapstructure:"target_base"`
	AltScreen  bool    `mapstructure:"alt_screen"`
	Mouse      bool    `mapstructure:"mouse"`
}

// LogConfig sends logs to a file; the terminal belongs to the UI.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "arcadezone")
}

func configPath() string {
	if p := os.Getenv("ARCADEZONE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "arcadezone", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.source", "builtin")
	v.SetDefault("catalog.path", filepath.Join(os.Getenv("HOME"), ".config", "arcadezone", "catalog.toml"))
	v.SetDefault("database.path", filepath.Join(dataDir(), "arcadezone.db"))
	v.SetDefault("database.migrations", "")
	v.SetDefault("loader.duration", 2500*time.Millisecond)
	v.SetDefault("loader.interval", 50*time.Millisecond)
	v.SetDefault("loader.settle", 200*time.Millisecond)
	v.SetDefault("carousel.breakpoint", 768.0)
	v.SetDefault("carousel.swipe_threshold", 50.0)
	v.SetDefault("carousel.compact.item_width", 256.0)
	v.SetDefault("carousel.compact.item_gap", 32.0)
	v.SetDefault("carousel.wide.item_width", 320.0)
	v.SetDefault("carousel.wide.item_gap", 96.0)
	v.SetDefault("ui.cell_units", 8.0)
	v.SetDefault("ui.target_base", "")
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("ui.mouse", true)
	v.SetDefault("log.path", filepath.Join(dataDir(), "arcadezone.log"))
	v.SetDefault("log.level", "info")
}

// Load reads configuration from file and env. Env var overrides use prefix ARCADEZONE_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("ARCADEZONE_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "arcadezone"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ARCADEZONE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Catalog.Source = strings.ToLower(strings.TrimSpace(c.Catalog.Source))
	return c, nil
}

// Save writes cfg as TOML to the active config path, creating the directory if needed.
func Save(cfg Config) (string, error) {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("catalog.source", cfg.Catalog.Source)
	v.Set("catalog.path", cfg.Catalog.Path)
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("loader.duration", cfg.Loader.Duration.String())
	v.Set("loader.interval", cfg.Loader.Interval.String())
	v.Set("loader.settle", cfg.Loader.Settle.String())
	v.Set("carousel.breakpoint", cfg.Carousel.Breakpoint)
	v.Set("carousel.swipe_threshold", cfg.Carousel.SwipeThreshold)
	v.Set("carousel.compact.item_width", cfg.Carousel.Compact.ItemWidth)
	v.Set("carousel.compact.item_gap", cfg.Carousel.Compact.ItemGap)
	v.Set("carousel.wide.item_width", cfg.Carousel.Wide.ItemWidth)
	v.Set("carousel.wide.item_gap", cfg.Carousel.Wide.ItemGap)
	v.Set("ui.cell_units", cfg.UI.CellUnits)
	v.Set("ui.target_base", cfg.UI.TargetBase)
	v.Set("ui.alt_screen", cfg.UI.AltScreen)
	v.Set("ui.mouse", cfg.UI.Mouse)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
