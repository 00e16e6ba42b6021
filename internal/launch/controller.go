package launch

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jask/arcadezone/internal/carousel"
	"github.com/jask/arcadezone/internal/catalog"
	"github.com/jask/arcadezone/internal/loader"
	"github.com/jask/arcadezone/internal/schedule"
)

// Options configures a Controller. Catalog and Scheduler are required.
type Options struct {
	Catalog        *catalog.Catalog
	Scheduler      schedule.Scheduler
	Loader         loader.Config
	Layouts        carousel.LayoutTable
	Viewport       carousel.ViewportClass
	Breakpoint     float64
	SwipeThreshold float64
	Logger         *slog.Logger
	// NewRunID names each boot sequence; defaults to random UUIDs.
	NewRunID func() string
	// OnChange is called after every state change, on the control thread.
	OnChange func(Snapshot)
}

// DefaultBreakpoint is the viewport width at which the wide layout kicks in.
const DefaultBreakpoint = 768

// Snapshot is everything the presentation needs for one frame.
type Snapshot struct {
	Entries  []catalog.Entry
	Carousel carousel.State
	Launch   State
	Phase    Phase
	// Progress is set only while a launch is loading.
	Progress *loader.Progress
}

// Selected is the centred entry.
func (s Snapshot) Selected() catalog.Entry { return s.Entries[s.Carousel.Index] }

// Running returns the warm entry, if any.
func (s Snapshot) Running() (catalog.Entry, bool) { return s.find(s.Launch.RunningEntryID) }

// Loading returns the entry being booted, if any.
func (s Snapshot) Loading() (catalog.Entry, bool) {
	if s.Launch.Pending == nil {
		return catalog.Entry{}, false
	}
	return s.find(s.Launch.Pending.EntryID)
}

func (s Snapshot) find(id string) (catalog.Entry, bool) {
	if id == "" {
		return catalog.Entry{}, false
	}
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return catalog.Entry{}, false
}

// Controller is the single owner of the launch state, the carousel and the
// boot-sequence timer. It is not safe for concurrent use; every method and
// every scheduler callback must run on the same control thread.
type Controller struct {
	catalog    *catalog.Catalog
	carousel   *carousel.Engine
	swipe      *carousel.Swipe
	sched      schedule.Scheduler
	loaderCfg  loader.Config
	breakpoint float64
	log        *slog.Logger
	newRunID   func() string
	onChange   func(Snapshot)

	state    State
	run      *loader.Run
	progress loader.Progress
	closed   bool
}

func NewController(opts Options) (*Controller, error) {
	if opts.Catalog == nil {
		return nil, errors.New("launch: catalog is required")
	}
	if opts.Scheduler == nil {
		return nil, errors.New("launch: scheduler is required")
	}
	if opts.Loader == (loader.Config{}) {
		opts.Loader = loader.DefaultConfig()
	}
	if err := opts.Loader.Validate(); err != nil {
		return nil, err
	}
	if opts.Viewport == "" {
		opts.Viewport = carousel.Compact
	}
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = DefaultBreakpoint
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.NewRunID == nil {
		opts.NewRunID = uuid.NewString
	}
	engine, err := carousel.New(opts.Catalog.Len(), opts.Viewport, opts.Layouts)
	if err != nil {
		return nil, fmt.Errorf("carousel: %w", err)
	}
	return &Controller{
		catalog:    opts.Catalog,
		carousel:   engine,
		swipe:      carousel.NewSwipe(opts.SwipeThreshold),
		sched:      opts.Scheduler,
		loaderCfg:  opts.Loader,
		breakpoint: opts.Breakpoint,
		log:        opts.Logger,
		newRunID:   opts.NewRunID,
		onChange:   opts.OnChange,
	}, nil
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Entries:  c.catalog.Entries(),
		Carousel: c.carousel.State(),
		Launch:   c.state,
		Phase:    c.state.Phase(),
	}
	if c.state.Pending != nil {
		p := c.progress
		snap.Progress = &p
	}
	return snap
}

func (c *Controller) State() State              { return c.state }
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// inputLocked reports whether carousel input is ignored: the fullscreen game
// owns the keyboard.
func (c *Controller) inputLocked() bool { return c.closed || c.state.Expanded }

// MoveBy shifts the carousel selection by delta, clamped. Ignored while a
// game is expanded.
func (c *Controller) MoveBy(delta int) bool {
	if c.inputLocked() {
		return false
	}
	if !c.carousel.MoveBy(delta) {
		return false
	}
	c.changed()
	return true
}

// Navigate applies a directional push.
func (c *Controller) Navigate(dir carousel.Direction) bool {
	return c.MoveBy(dir.Delta())
}

// Select centres index directly. Out-of-range indexes are rejected; the
// call is ignored while a game is expanded.
func (c *Controller) Select(index int) error {
	if c.inputLocked() {
		return nil
	}
	if index == c.carousel.Index() {
		return c.carousel.Select(index)
	}
	if err := c.carousel.Select(index); err != nil {
		c.log.Warn("select rejected", "index", index, "err", err)
		return err
	}
	c.changed()
	return nil
}

// BeginDrag records the start of a pointer drag or swipe.
func (c *Controller) BeginDrag(x float64) {
	if c.inputLocked() {
		c.swipe.Cancel()
		return
	}
	c.swipe.Begin(x)
}

// EndDrag finishes a drag at x and navigates when it was long enough.
func (c *Controller) EndDrag(x float64) bool {
	if c.inputLocked() {
		c.swipe.Cancel()
		return false
	}
	dir, ok := c.swipe.End(x)
	if !ok {
		return false
	}
	return c.Navigate(dir)
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.swipe.Active() }

// HitTest maps a position measured from the viewport centre to the card
// under it.
func (c *Controller) HitTest(x float64) (int, bool) { return c.carousel.HitTest(x) }

// SetViewportClass switches carousel metrics without moving the selection.
func (c *Controller) SetViewportClass(class carousel.ViewportClass) error {
	if c.carousel.Class() == class {
		return nil
	}
	if err := c.carousel.SetViewportClass(class); err != nil {
		return err
	}
	c.changed()
	return nil
}

// SetViewportWidth buckets a measured width into a class.
func (c *Controller) SetViewportWidth(width float64) error {
	return c.SetViewportClass(carousel.ClassForWidth(width, c.breakpoint))
}

// LaunchSelected launches the centred entry.
func (c *Controller) LaunchSelected() error {
	return c.Launch(c.catalog.At(c.carousel.Index()).ID)
}

// Launch requests entry id. Only the centred entry can be launched; pick it
// with Select first.
func (c *Controller) Launch(id string) error {
	if c.closed {
		return ErrClosed
	}
	entry, ok := c.catalog.Lookup(id)
	if !ok {
		c.log.Warn("launch rejected", "entry", id, "err", ErrUnknownEntry)
		return fmt.Errorf("%w: %q", ErrUnknownEntry, id)
	}
	if idx, _ := c.catalog.IndexOf(id); idx != c.carousel.Index() {
		c.log.Warn("launch rejected", "entry", id, "err", ErrNotSelected)
		return fmt.Errorf("%w: %q", ErrNotSelected, id)
	}
	return c.apply(RequestEvent{Entry: entry, RunID: c.newRunID()})
}

// Expand shows the running game fullscreen.
func (c *Controller) Expand() error {
	if c.closed {
		return ErrClosed
	}
	return c.apply(ExpandEvent{})
}

// Return collapses the fullscreen game; the game stays warm.
func (c *Controller) Return() error {
	if c.closed {
		return ErrClosed
	}
	return c.apply(ReturnEvent{})
}

// Close stops any in-flight boot sequence. The controller rejects launches
// afterwards.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.run != nil {
		c.run.Cancel()
		c.log.Info("boot sequence cancelled", "run_id", c.state.Pending.RunID, "reason", "close")
		c.run = nil
	}
}

func (c *Controller) apply(ev Event) error {
	prev := c.state
	next, effect, err := Transition(c.state, ev)
	if err != nil {
		return err
	}
	c.state = next
	switch effect {
	case EffectRestartLoading:
		c.cancelRun(prev.Pending, next.Pending.EntryID)
		if err := c.startRun(*next.Pending); err != nil {
			return err
		}
	case EffectStartLoading:
		if err := c.startRun(*next.Pending); err != nil {
			return err
		}
	}
	if next.Phase() != prev.Phase() {
		c.log.Debug("launch phase", "from", prev.Phase(), "to", next.Phase(), "running", next.RunningEntryID)
	}
	if next != prev || effect != EffectNone {
		c.changed()
	}
	return nil
}

func (c *Controller) cancelRun(old *PendingLaunch, by string) {
	if c.run == nil {
		return
	}
	c.run.Cancel()
	c.run = nil
	if old != nil {
		c.log.Info("boot sequence cancelled", "run_id", old.RunID, "entry", old.EntryID, "superseded_by", by)
	}
}

func (c *Controller) startRun(p PendingLaunch) error {
	c.progress = loader.ProgressAt(0, c.loaderCfg.Steps())
	run, err := loader.Start(c.sched, c.loaderCfg,
		func(pr loader.Progress) {
			c.progress = pr
			c.changed()
		},
		func() {
			c.run = nil
			if err := c.apply(CompleteEvent{RunID: p.RunID}); err != nil {
				c.log.Error("boot completion rejected", "run_id", p.RunID, "err", err)
				return
			}
			c.log.Info("game running", "entry", p.EntryID, "run_id", p.RunID)
		},
	)
	if err != nil {
		c.state.Pending = nil
		return err
	}
	c.run = run
	c.log.Info("boot sequence started", "entry", p.EntryID, "run_id", p.RunID, "target", p.Target)
	return nil
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}
