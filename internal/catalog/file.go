package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// File is the on-disk catalog layout:
//
//	[[game]]
//	id = "spirited"
//	title = "SPIRITED"
//	description = "Journey through the ethereal plane."
//	theme = "cyan"
//	target = "/spirited"
type File struct {
	Games []FileEntry `toml:"game"`
}

type FileEntry struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description,omitempty"`
	Theme       string `toml:"theme"`
	Target      string `toml:"target"`
}

// LoadFile reads a TOML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c, err := f.Catalog()
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return c, nil
}

// Decode parses a TOML catalog document.
func Decode(data string) (*Catalog, error) {
	var f File
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return f.Catalog()
}

func (f File) Catalog() (*Catalog, error) {
	entries := make([]Entry, 0, len(f.Games))
	for _, g := range f.Games {
		theme, err := ParseTheme(g.Theme)
		if err != nil {
			return nil, fmt.Errorf("game %q: %w", g.ID, err)
		}
		entries = append(entries, Entry{
			ID:          strings.TrimSpace(g.ID),
			Title:       strings.TrimSpace(g.Title),
			Description: strings.TrimSpace(g.Description),
			Theme:       theme,
			Target:      strings.TrimSpace(g.Target),
		})
	}
	return New(entries)
}

// FileFrom is the on-disk form of c.
func FileFrom(c *Catalog) File {
	f := File{Games: make([]FileEntry, 0, c.Len())}
	for _, e := range c.entries {
		f.Games = append(f.Games, FileEntry{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Theme:       string(e.Theme),
			Target:      e.Target,
		})
	}
	return f
}

// WriteFile saves c as a TOML catalog. The file is replaced atomically.
func WriteFile(path string, c *Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(FileFrom(c)); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
