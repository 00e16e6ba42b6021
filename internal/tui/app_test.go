package tui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/arcadezone/internal/carousel"
	"github.com/jask/arcadezone/internal/catalog"
	"github.com/jask/arcadezone/internal/launch"
	"github.com/jask/arcadezone/internal/loader"
	"github.com/jask/arcadezone/internal/schedule"
)

const boot = 2500*time.Millisecond + 200*time.Millisecond

type harness struct {
	app   *App
	ctrl  *launch.Controller
	clock *schedule.Manual
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := schedule.NewManual()
	ctrl, err := launch.NewController(launch.Options{
		Catalog:   catalog.Default(),
		Scheduler: clock,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	h := &harness{
		app:   New(ctrl, nil, Options{TargetBase: "https://arcade.example", Logger: quietLogger()}),
		ctrl:  ctrl,
		clock: clock,
	}
	h.send(t, tea.WindowSizeMsg{Width: 80, Height: 40})
	return h
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.app.Update(msg)
	got, ok := next.(*App)
	require.True(t, ok, "Update returned %T", next)
	h.app = got
	return cmd
}

func (h *harness) press(t *testing.T, k string) tea.Cmd {
	t.Helper()
	return h.send(t, keyMsg(k))
}

func (h *harness) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		h.press(t, string(r))
	}
}

func (h *harness) click(t *testing.T, x, y int) {
	t.Helper()
	h.send(t, tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	h.send(t, tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
}

func (h *harness) drag(t *testing.T, from, to int) {
	t.Helper()
	h.send(t, tea.MouseMsg{X: from, Y: cardTop + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	h.send(t, tea.MouseMsg{X: to, Y: cardTop + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
}

func (h *harness) screen() string {
	return ansi.Strip(h.app.View())
}

func (h *harness) index() int {
	return h.ctrl.Snapshot().Carousel.Index
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestDirectionalKeys(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.press(t, "left")
	require.Equal(t, 1, h.index(), "left moves forward")
	h.press(t, "h")
	require.Equal(t, 2, h.index())
	h.press(t, "right")
	h.press(t, "l")
	h.press(t, "l")
	require.Equal(t, 0, h.index(), "clamped at the first card")
}

func TestConfirmBootsThenRuns(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.press(t, "enter")
	require.Equal(t, launch.PhaseLoading, h.ctrl.Snapshot().Phase)
	out := h.screen()
	require.Contains(t, out, loader.PhaseInitializing.Label())
	for _, d := range diagnostics {
		require.Contains(t, out, d)
	}

	h.clock.Advance(1250 * time.Millisecond)
	require.Contains(t, h.screen(), "CHECKING MEMORY...")

	h.clock.Advance(boot - 1250*time.Millisecond)
	snap := h.ctrl.Snapshot()
	require.Equal(t, launch.PhaseRunning, snap.Phase)
	require.Equal(t, "spirited", snap.Launch.RunningEntryID)
	require.Contains(t, h.screen(), "[E] EXPAND")
	require.NotContains(t, h.screen(), "VRAM")
}

func TestSpaceConfirmsToo(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.press(t, " ")
	require.Equal(t, launch.PhaseLoading, h.ctrl.Snapshot().Phase)
}

func TestOtherCardsDimmedWhileLoading(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	require.Contains(t, h.screen(), "INSERT COIN")
	h.press(t, "enter")
	require.Contains(t, h.screen(), "BOOTING")
}

func TestExpandAndReturn(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.press(t, "enter")
	h.clock.Advance(boot)

	h.press(t, "e")
	require.Equal(t, launch.PhaseExpanded, h.ctrl.Snapshot().Phase)
	out := h.screen()
	require.Contains(t, out, "RETURN TO ARCADE ZONE")
	require.Contains(t, out, "PLAYING: SPIRITED")
	require.Contains(t, out, "https://arcade.example/spirited")
	require.NotContains(t, out, footerText)

	h.press(t, "left")
	h.press(t, "3")
	require.Equal(t, 0, h.index(), "carousel input ignored while expanded")

	h.press(t, "esc")
	require.Equal(t, launch.PhaseRunning, h.ctrl.Snapshot().Phase)
	require.Contains(t, h.screen(), footerText)
}

func TestConfirmOnRunningGameExpandsWithoutReload(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.press(t, "enter")
	h.clock.Advance(boot)

	h.press(t, "enter")
	require.Equal(t, launch.PhaseExpanded, h.ctrl.Snapshot().Phase)
	require.Zero(t, h.clock.Pending(), "no boot sequence scheduled")

	h.press(t, "backspace")
	require.Equal(t, launch.PhaseRunning, h.ctrl.Snapshot().Phase)
}

func TestExpandWithNothingRunningReportsError(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.press(t, "e")
	require.True(t, h.app.statusErr)
	require.Equal(t, launch.ErrNothingRunning.Error(), h.app.status)
	require.Contains(t, h.screen(), launch.ErrNothingRunning.Error())

	h.press(t, "left")
	require.Empty(t, h.app.status, "next key clears the status line")
}

func TestDigitKeysSelect(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.press(t, "3")
	require.Equal(t, 2, h.index())

	h.press(t, "9")
	require.Equal(t, 2, h.index())
	require.Contains(t, h.app.status, carousel.ErrIndexOutOfRange.Error())
}

func TestJumpPrompt(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.press(t, "/")
	require.True(t, h.app.jumping)
	require.Contains(t, h.screen(), "JUMP TO")
	h.typeText(t, "cookie")
	h.press(t, "enter")
	require.False(t, h.app.jumping)
	require.Equal(t, 1, h.index())

	h.press(t, "/")
	h.typeText(t, "spirtied 3d")
	h.press(t, "enter")
	require.Equal(t, 3, h.index(), "typo tolerated")

	h.press(t, "/")
	h.typeText(t, "zzzzzzzz")
	h.press(t, "enter")
	require.Equal(t, 3, h.index())
	require.Contains(t, h.app.status, "no game matches")

	h.press(t, "/")
	h.typeText(t, "q")
	h.press(t, "esc")
	require.False(t, h.app.jumping, "q is text inside the prompt")
	require.Equal(t, 3, h.index())
}

func TestMouseSwipe(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.drag(t, 60, 40)
	require.Equal(t, 1, h.index(), "right-to-left drag is a left swipe")

	h.drag(t, 40, 45)
	require.Equal(t, 1, h.index(), "40 units is noise")

	h.drag(t, 30, 50)
	require.Equal(t, 0, h.index())
}

func TestMouseClickSelectsThenLaunches(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.click(t, 62, cardTop+2)
	require.Equal(t, 1, h.index(), "neighbour card is centred")
	require.Equal(t, launch.PhaseIdle, h.ctrl.Snapshot().Phase)

	h.click(t, 40, cardTop+2)
	require.Equal(t, launch.PhaseLoading, h.ctrl.Snapshot().Phase)
	loading, ok := h.ctrl.Snapshot().Loading()
	require.True(t, ok)
	require.Equal(t, "cookies-great-escape", loading.ID)
}

func TestMouseClickOutsideCardsIgnored(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.click(t, 40, 0)
	h.click(t, 58, cardTop+2)
	require.Equal(t, 0, h.index())
	require.Equal(t, launch.PhaseIdle, h.ctrl.Snapshot().Phase)
}

func TestBannerClickReturns(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.press(t, "enter")
	h.clock.Advance(boot)
	h.press(t, "e")

	h.drag(t, 60, 20)
	require.Equal(t, 0, h.index(), "swipes ignored while expanded")

	h.click(t, 3, 0)
	require.Equal(t, launch.PhaseRunning, h.ctrl.Snapshot().Phase)
}

func TestWindowSizePicksViewportClass(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	require.Equal(t, carousel.Compact, h.ctrl.Snapshot().Carousel.Class)

	h.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, carousel.Wide, h.ctrl.Snapshot().Carousel.Class)
	require.Equal(t, 120, h.app.help.Width)

	h.send(t, tea.WindowSizeMsg{Width: 95, Height: 40})
	require.Equal(t, carousel.Compact, h.ctrl.Snapshot().Carousel.Class)
}

func TestHelpToggle(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	require.NotContains(t, h.screen(), "jump")
	h.press(t, "?")
	require.True(t, h.app.help.ShowAll)
	require.Contains(t, h.screen(), "jump")
}

func TestQuitClosesController(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.press(t, "enter")

	cmd := h.press(t, "q")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Zero(t, h.clock.Pending(), "boot timers cancelled")
	require.ErrorIs(t, h.ctrl.LaunchSelected(), launch.ErrClosed)
}

func TestPostedSchedulerDrivesBoot(t *testing.T) {
	t.Parallel()

	fires := make(chan schedule.Fire, 64)
	posted := schedule.NewPosted(func(f schedule.Fire) { fires <- f })
	ctrl, err := launch.NewController(launch.Options{
		Catalog:   catalog.Default(),
		Scheduler: posted,
		Loader:    loader.Config{Duration: 20 * time.Millisecond, Interval: 5 * time.Millisecond, Settle: 5 * time.Millisecond},
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	app := New(ctrl, posted, Options{Logger: quietLogger()})

	app.Update(keyMsg("enter"))
	deadline := time.After(2 * time.Second)
	for ctrl.State().Phase() != launch.PhaseRunning {
		select {
		case f := <-fires:
			app.Update(f)
		case <-deadline:
			t.Fatal("boot sequence never completed")
		}
	}
	require.Equal(t, "spirited", ctrl.State().RunningEntryID)
	require.Zero(t, posted.Live())
}
