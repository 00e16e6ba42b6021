package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Expand  key.Binding
	Return  key.Binding
	Pick    key.Binding
	Jump    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "next"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "previous"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand"),
		),
		Return: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "return"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick"),
		),
		Jump: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// expanded narrows the map to what a fullscreen game leaves to the shell.
func (k keyMap) expanded() keyMap {
	k.Left.SetEnabled(false)
	k.Right.SetEnabled(false)
	k.Confirm.SetEnabled(false)
	k.Expand.SetEnabled(false)
	k.Pick.SetEnabled(false)
	k.Jump.SetEnabled(false)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Confirm, k.Expand, k.Return, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Pick, k.Jump},
		{k.Confirm, k.Expand, k.Return},
		{k.Help, k.Quit},
	}
}
