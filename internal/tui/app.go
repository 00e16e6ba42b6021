package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arcadezone/internal/carousel"
	"github.com/jask/arcadezone/internal/launch"
	"github.com/jask/arcadezone/internal/schedule"
)

// DefaultCellUnits is how many carousel distance units one column spans.
const DefaultCellUnits = 8.0

// Options tunes the shell. Zero values get defaults.
type Options struct {
	CellUnits  float64
	TargetBase string
	Logger     *slog.Logger
}

// App is the bubbletea model. It renders controller state and forwards
// input; every controller call happens inside Update.
type App struct {
	ctrl   *launch.Controller
	posted *schedule.Posted
	opts   Options
	log    *slog.Logger

	keys    keyMap
	help    help.Model
	jump    textinput.Model
	jumping bool

	width  int
	height int
	press  *cell

	status    string
	statusErr bool
}

type cell struct{ x, y int }

var errNoMatch = errors.New("no game matches")

// New builds the shell around ctrl. posted is the scheduler the controller
// runs its timers on, or nil when timers are driven elsewhere.
func New(ctrl *launch.Controller, posted *schedule.Posted, opts Options) *App {
	if opts.CellUnits <= 0 {
		opts.CellUnits = DefaultCellUnits
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ti := textinput.New()
	ti.Prompt = "JUMP TO › "
	ti.Placeholder = "game title"
	ti.CharLimit = 40
	ti.PromptStyle = promptStyle

	return &App{
		ctrl:   ctrl,
		posted: posted,
		opts:   opts,
		log:    opts.Logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
		jump:   ti,
		width:  80,
		height: 24,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("ARCADE ZONE")
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case schedule.Fire:
		if a.posted != nil {
			a.posted.Deliver(msg)
		}
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.report(a.ctrl.SetViewportWidth(float64(msg.Width) * a.opts.CellUnits))
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case tea.MouseMsg:
		a.handleMouse(msg)
	}
	return a, nil
}

// activeKeys is the key map for the current launch phase.
func (a *App) activeKeys() keyMap {
	if a.ctrl.State().Expanded {
		return a.keys.expanded()
	}
	return a.keys
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.jumping {
		return a.handleJumpKey(msg)
	}
	a.status, a.statusErr = "", false
	keys := a.activeKeys()
	switch {
	case key.Matches(msg, keys.Quit):
		a.shutdown()
		return tea.Quit
	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, keys.Return):
		a.report(a.ctrl.Return())
	case key.Matches(msg, keys.Left):
		a.ctrl.Navigate(carousel.Left)
	case key.Matches(msg, keys.Right):
		a.ctrl.Navigate(carousel.Right)
	case key.Matches(msg, keys.Confirm):
		a.report(a.ctrl.LaunchSelected())
	case key.Matches(msg, keys.Expand):
		a.report(a.ctrl.Expand())
	case key.Matches(msg, keys.Pick):
		a.report(a.ctrl.Select(int(msg.String()[0] - '1')))
	case key.Matches(msg, keys.Jump):
		a.jumping = true
		a.jump.Reset()
		return a.jump.Focus()
	}
	return nil
}

func (a *App) handleJumpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		a.closeJump()
		return nil
	case tea.KeyEnter:
		query := a.jump.Value()
		a.closeJump()
		idx, ok := a.ctrl.Catalog().Closest(query)
		if !ok {
			a.report(fmt.Errorf("%w %q", errNoMatch, query))
			return nil
		}
		a.report(a.ctrl.Select(idx))
		return nil
	case tea.KeyCtrlC:
		a.shutdown()
		return tea.Quit
	}
	var cmd tea.Cmd
	a.jump, cmd = a.jump.Update(msg)
	return cmd
}

func (a *App) closeJump() {
	a.jumping = false
	a.jump.Blur()
}

// handleMouse turns a left press/release pair into a swipe when the pointer
// moved, or a click on the card under it when it did not.
func (a *App) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if a.ctrl.State().Expanded {
			if msg.Y == 0 {
				a.report(a.ctrl.Return())
			}
			return
		}
		a.press = &cell{x: msg.X, y: msg.Y}
		a.ctrl.BeginDrag(float64(msg.X) * a.opts.CellUnits)
	case tea.MouseActionRelease:
		if a.press == nil {
			return
		}
		start := *a.press
		a.press = nil
		if a.ctrl.EndDrag(float64(msg.X) * a.opts.CellUnits) {
			return
		}
		if msg.X != start.x || msg.Y != start.y || !a.onCards(start.y) {
			return
		}
		a.click(start.x)
	}
}

func (a *App) click(x int) {
	offset := (float64(x) + 0.5 - float64(a.width)/2) * a.opts.CellUnits
	idx, ok := a.ctrl.HitTest(offset)
	if !ok {
		return
	}
	if idx != a.ctrl.Snapshot().Carousel.Index {
		a.report(a.ctrl.Select(idx))
		return
	}
	a.report(a.ctrl.LaunchSelected())
}

func (a *App) onCards(y int) bool {
	return y >= cardTop && y < cardTop+cardHeight
}

func (a *App) report(err error) {
	if err == nil {
		return
	}
	a.status, a.statusErr = err.Error(), true
	a.log.Debug("input rejected", "err", err)
}

func (a *App) shutdown() {
	a.ctrl.Close()
	if a.posted != nil {
		a.posted.StopAll()
	}
}
