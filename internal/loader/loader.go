// Package loader runs the fixed-length boot animation shown while a game is
// being "inserted". There is no real asset loading behind it.
package loader

import (
	"errors"
	"fmt"
	"time"

	"github.com/jask/arcadezone/internal/schedule"
)

var ErrInvalidConfig = errors.New("loader: invalid config")

// Config paces the sequence.
type Config struct {
	Duration time.Duration
	Interval time.Duration
	Settle   time.Duration
}

func DefaultConfig() Config {
	return Config{
		Duration: 2500 * time.Millisecond,
		Interval: 50 * time.Millisecond,
		Settle:   200 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidConfig)
	case c.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive", ErrInvalidConfig)
	case c.Interval > c.Duration:
		return fmt.Errorf("%w: interval %s exceeds duration %s", ErrInvalidConfig, c.Interval, c.Duration)
	case c.Settle < 0:
		return fmt.Errorf("%w: settle must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Steps is the number of ticks from 0 to 1. A duration that is not a whole
// multiple of the interval rounds up so the bar still ends at 100%.
func (c Config) Steps() int {
	steps := int(c.Duration / c.Interval)
	if c.Duration%c.Interval != 0 {
		steps++
	}
	return steps
}

// Progress is what the presentation shows while a launch is loading.
type Progress struct {
	Ratio float64
	Phase Phase
}

// Percent is Ratio scaled to 0..100.
func (p Progress) Percent() float64 { return p.Ratio * 100 }

// ProgressAt is the progress after step ticks.
func ProgressAt(step, steps int) Progress {
	if step < 0 {
		step = 0
	}
	if step >= steps {
		return Progress{Ratio: 1, Phase: PhaseReady}
	}
	ratio := float64(step) / float64(steps)
	return Progress{Ratio: ratio, Phase: PhaseFor(ratio)}
}

// Run is one in-flight sequence. It is driven entirely by its scheduler and
// must only be touched from that scheduler's control thread.
type Run struct {
	cfg        Config
	steps      int
	step       int
	ticker     schedule.Handle
	settle     schedule.Handle
	onProgress func(Progress)
	onComplete func()
	done       bool
	cancelled  bool
}

// Start arms the tick timer. onProgress sees every tick including the final
// READY one; onComplete fires once, Settle after READY, unless the run is
// cancelled first.
func Start(s schedule.Scheduler, cfg Config, onProgress func(Progress), onComplete func()) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Run{
		cfg:        cfg,
		steps:      cfg.Steps(),
		onProgress: onProgress,
		onComplete: onComplete,
	}
	r.ticker = s.Every(cfg.Interval, func() { r.tick(s) })
	return r, nil
}

func (r *Run) tick(s schedule.Scheduler) {
	if r.step >= r.steps {
		return
	}
	r.step++
	p := r.Progress()
	if r.onProgress != nil {
		r.onProgress(p)
	}
	if r.cancelled || p.Phase != PhaseReady {
		return
	}
	r.ticker.Stop()
	r.ticker = nil
	r.settle = s.After(r.cfg.Settle, func() {
		r.settle = nil
		r.done = true
		if r.onComplete != nil {
			r.onComplete()
		}
	})
}

// Progress reports where the bar currently is.
func (r *Run) Progress() Progress { return ProgressAt(r.step, r.steps) }

// Ticks counts timer ticks observed so far.
func (r *Run) Ticks() int { return r.step }

// Done reports whether completion has been signalled.
func (r *Run) Done() bool { return r.done }

// Cancelled reports whether Cancel stopped the run before completion.
func (r *Run) Cancelled() bool { return r.cancelled }

// Cancel stops whichever timer is live. No callback of this run fires after
// Cancel returns. Cancelling a finished run is a no-op.
func (r *Run) Cancel() {
	if r.done || r.cancelled {
		return
	}
	r.cancelled = true
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
	if r.settle != nil {
		r.settle.Stop()
		r.settle = nil
	}
}
