package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := Default()
	require.Equal(t, 4, c.Len())
	require.Equal(t, "SPIRITED", c.At(0).Title)

	idx, ok := c.IndexOf("the-special-order")
	require.True(t, ok)
	require.Equal(t, 2, idx)

	e, ok := c.Lookup("spirited-3d")
	require.True(t, ok)
	require.Equal(t, ThemeGreen, e.Theme)
	require.Equal(t, "/spirited/3d.html", e.Target)

	_, ok = c.Lookup("pacman")
	require.False(t, ok)
}

func TestEntriesReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Default()
	entries := c.Entries()
	entries[0].Title = "MUTATED"
	require.Equal(t, "SPIRITED", c.At(0).Title)
}

func TestNewRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.ErrorIs(t, err, ErrEmptyCatalog)

	dup := []Entry{
		{ID: "a", Title: "A", Theme: ThemeCyan, Target: "/a"},
		{ID: "a", Title: "A again", Theme: ThemePink, Target: "/a2"},
	}
	_, err = New(dup)
	require.ErrorIs(t, err, ErrDuplicateID)

	cases := map[string]Entry{
		"empty id":      {Title: "A", Theme: ThemeCyan, Target: "/a"},
		"empty title":   {ID: "a", Theme: ThemeCyan, Target: "/a"},
		"empty target":  {ID: "a", Title: "A", Theme: ThemeCyan},
		"unknown theme": {ID: "a", Title: "A", Theme: "mauve", Target: "/a"},
	}
	for name, e := range cases {
		_, err := New([]Entry{e})
		require.ErrorIs(t, err, ErrInvalidEntry, name)
	}
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	th, err := ParseTheme(" Purple ")
	require.NoError(t, err)
	require.Equal(t, ThemePurple, th)

	_, err = ParseTheme("teal")
	require.ErrorIs(t, err, ErrInvalidEntry)
}

func TestDecodeCatalogFile(t *testing.T) {
	t.Parallel()

	doc := `
[[game]]
id = "a"
title = "ALPHA"
theme = "Pink"
target = "/alpha"

[[game]]
id = "b"
title = "BRAVO"
description = "second"
theme = "orange"
target = "https://games.example/bravo"
`
	c, err := Decode(doc)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	require.Equal(t, ThemePink, c.At(0).Theme)
	require.Equal(t, "second", c.At(1).Description)
}

func TestLoadFileReportsPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[game]]\nid = \"a\"\ntitle = \"A\"\ntheme = \"nope\"\ntarget = \"/a\"\n"), 0o644))

	_, err := LoadFile(path)
	require.ErrorIs(t, err, ErrInvalidEntry)
	require.Contains(t, err.Error(), path)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestWriteFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export", "catalog.toml")
	require.NoError(t, WriteFile(path, Default()))

	back, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultEntries(), back.Entries())

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestClosest(t *testing.T) {
	t.Parallel()

	c := Default()
	cases := []struct {
		query string
		want  int
		ok    bool
	}{
		{"cookie", 1, true},
		{"spirited", 0, true},
		{"spirited 3", 3, true},
		{"the specal order", 2, true},
		{"SPRITED", 0, true},
		{"", 0, false},
		{"zzzzzzzzzz", 0, false},
	}
	for _, tc := range cases {
		got, ok := c.Closest(tc.query)
		require.Equal(t, tc.ok, ok, tc.query)
		if tc.ok {
			require.Equal(t, tc.want, got, tc.query)
		}
	}
}
