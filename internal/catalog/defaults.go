package catalog

// DefaultEntries is the cabinet line-up shipped with the binary.
func DefaultEntries() []Entry {
	return []Entry{
		{
			ID:          "spirited",
			Title:       "SPIRITED",
			Description: "Journey through the ethereal plane.",
			Theme:       ThemeCyan,
			Target:      "/spirited",
		},
		{
			ID:          "cookies-great-escape",
			Title:       "COOKIE'S GREAT ESCAPE",
			Description: "Help Cookie dodge the hungry mouths!",
			Theme:       ThemeOrange,
			Target:      "/cookiesgreatescape",
		},
		{
			ID:          "the-special-order",
			Title:       "THE SPECIAL ORDER",
			Description: "Prepare the ultimate dish!",
			Theme:       ThemePurple,
			Target:      "/thespecialorder",
		},
		{
			ID:          "spirited-3d",
			Title:       "SPIRITED 3D",
			Description: "Enter the third dimension!",
			Theme:       ThemeGreen,
			Target:      "/spirited/3d.html",
		},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultEntries())
	if err != nil {
		panic(err)
	}
	return c
}
