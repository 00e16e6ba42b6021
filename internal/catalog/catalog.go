package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCatalog = errors.New("catalog: no entries")
	ErrDuplicateID  = errors.New("catalog: duplicate entry id")
	ErrInvalidEntry = errors.New("catalog: invalid entry")
)

// Theme is the cabinet palette an entry is drawn with.
type Theme string

const (
	ThemeCyan   Theme = "cyan"
	ThemeOrange Theme = "orange"
	ThemePink   Theme = "pink"
	ThemePurple Theme = "purple"
	ThemeGreen  Theme = "green"
)

// Themes lists every known palette key.
func Themes() []Theme {
	return []Theme{ThemeCyan, ThemeOrange, ThemePink, ThemePurple, ThemeGreen}
}

func (t Theme) Valid() bool {
	for _, known := range Themes() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTheme accepts a palette key in any case.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown theme %q", ErrInvalidEntry, s)
	}
	return t, nil
}

// Entry is one launchable game. Target is opaque to the launcher.
type Entry struct {
	ID          string
	Title       string
	Description string
	Theme       Theme
	Target      string
}

func (e Entry) validate() error {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return fmt.Errorf("%w: empty id (title %q)", ErrInvalidEntry, e.Title)
	case strings.TrimSpace(e.Title) == "":
		return fmt.Errorf("%w: %s has no title", ErrInvalidEntry, e.ID)
	case strings.TrimSpace(e.Target) == "":
		return fmt.Errorf("%w: %s has no launch target", ErrInvalidEntry, e.ID)
	case !e.Theme.Valid():
		return fmt.Errorf("%w: %s has unknown theme %q", ErrInvalidEntry, e.ID, e.Theme)
	}
	return nil
}

// Catalog is the fixed, ordered list of games. Order is carousel order.
type Catalog struct {
	entries []Entry
	byID    map[string]int
}

// New validates entries and freezes them into a Catalog.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		entries: make([]Entry, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, ok := c.byID[e.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		c.entries[i] = e
		c.byID[e.ID] = i
	}
	return c, nil
}

// Entries returns a copy in presentation order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Len() int { return len(c.entries) }

// At panics when i is out of range, like a slice index.
func (c *Catalog) At(i int) Entry { return c.entries[i] }

func (c *Catalog) Lookup(id string) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

func (c *Catalog) IndexOf(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}
