// Package launch coordinates which game is loading, running, or expanded.
//
// Transition is a pure function over State; Controller owns the single
// live State together with the carousel and the boot-sequence timer, and is
// the only way callers can change either.
package launch

import (
	"errors"
	"fmt"

	"github.com/jask/arcadezone/internal/catalog"
)

var (
	ErrUnknownEntry    = errors.New("launch: unknown entry")
	ErrNotSelected     = errors.New("launch: entry is not the current selection")
	ErrNothingRunning  = errors.New("launch: no game is running")
	ErrLoading         = errors.New("launch: a game is loading")
	ErrStaleCompletion = errors.New("launch: completion for a superseded run")
	ErrClosed          = errors.New("launch: controller closed")
)

// Phase is the coarse lifecycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseRunning
	PhaseExpanded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseRunning:
		return "running"
	case PhaseExpanded:
		return "expanded"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// PendingLaunch is the launch currently going through the boot sequence.
type PendingLaunch struct {
	EntryID string
	Target  string
	Theme   catalog.Theme
	RunID   string
}

// State is the launch bookkeeping. Expanded implies RunningEntryID is set.
// RunningEntryID is overwritten by a newer launch but never cleared.
type State struct {
	RunningEntryID string
	Expanded       bool
	Pending        *PendingLaunch
}

func (s State) Phase() Phase {
	switch {
	case s.Pending != nil:
		return PhaseLoading
	case s.Expanded:
		return PhaseExpanded
	case s.RunningEntryID != "":
		return PhaseRunning
	}
	return PhaseIdle
}

// IsRunning reports whether id is the warm entry.
func (s State) IsRunning(id string) bool { return id != "" && s.RunningEntryID == id }

// IsLoading reports whether id is the pending entry.
func (s State) IsLoading(id string) bool { return s.Pending != nil && s.Pending.EntryID == id }

// IsExpanded reports whether id is on screen fullscreen.
func (s State) IsExpanded(id string) bool { return s.Expanded && s.IsRunning(id) }

// Event is an input to Transition.
type Event interface{ event() }

// RequestEvent asks to launch Entry; RunID names the boot sequence it would start.
type RequestEvent struct {
	Entry catalog.Entry
	RunID string
}

// CompleteEvent reports that the boot sequence RunID finished.
type CompleteEvent struct{ RunID string }

// ExpandEvent asks to show the running game fullscreen.
type ExpandEvent struct{}

// ReturnEvent collapses the fullscreen game back to the selection screen.
type ReturnEvent struct{}

func (RequestEvent) event()  {}
func (CompleteEvent) event() {}
func (ExpandEvent) event()   {}
func (ReturnEvent) event()   {}

// Effect is the side effect the owner must carry out after a transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectStartLoading starts a boot sequence for the new Pending.
	EffectStartLoading
	// EffectRestartLoading stops the in-flight sequence, then starts one for
	// the new Pending.
	EffectRestartLoading
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectStartLoading:
		return "start"
	case EffectRestartLoading:
		return "restart"
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// Transition computes the next state. On error the input state is returned
// unchanged with EffectNone.
func Transition(s State, ev Event) (State, Effect, error) {
	switch ev := ev.(type) {
	case RequestEvent:
		return request(s, ev)
	case CompleteEvent:
		if s.Pending == nil || s.Pending.RunID != ev.RunID {
			return s, EffectNone, fmt.Errorf("%w: %s", ErrStaleCompletion, ev.RunID)
		}
		next := s
		next.RunningEntryID = s.Pending.EntryID
		next.Pending = nil
		next.Expanded = false
		return next, EffectNone, nil
	case ExpandEvent:
		switch {
		case s.Pending != nil:
			return s, EffectNone, ErrLoading
		case s.RunningEntryID == "":
			return s, EffectNone, ErrNothingRunning
		}
		next := s
		next.Expanded = true
		return next, EffectNone, nil
	case ReturnEvent:
		next := s
		next.Expanded = false
		return next, EffectNone, nil
	}
	return s, EffectNone, fmt.Errorf("launch: unhandled event %T", ev)
}

func request(s State, ev RequestEvent) (State, Effect, error) {
	if ev.Entry.ID == "" {
		return s, EffectNone, fmt.Errorf("%w: empty id", ErrUnknownEntry)
	}
	pending := &PendingLaunch{
		EntryID: ev.Entry.ID,
		Target:  ev.Entry.Target,
		Theme:   ev.Entry.Theme,
		RunID:   ev.RunID,
	}
	next := s
	switch {
	case s.Pending != nil && s.Pending.EntryID == ev.Entry.ID:
		// Already booting this one.
		return s, EffectNone, nil
	case s.Pending != nil:
		next.Pending = pending
		next.Expanded = false
		return next, EffectRestartLoading, nil
	case s.IsRunning(ev.Entry.ID):
		// Warm game: show it instead of booting it again.
		next.Expanded = true
		return next, EffectNone, nil
	}
	next.Pending = pending
	next.Expanded = false
	return next, EffectStartLoading, nil
}
