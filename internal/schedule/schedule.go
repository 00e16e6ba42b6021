// Package schedule provides cancellable timers whose callbacks run on the
// owner's control thread.
//
// A Handle that has been stopped never invokes its callback again, even if
// the underlying wake-up was already in flight. Callers hold the handle of
// every live timer and stop it before starting a replacement.
package schedule

import "time"

// Handle controls one scheduled callback. Stop is idempotent and reports
// whether the timer was still live.
type Handle interface {
	Stop() bool
}

// Scheduler arms timers. Implementations run fn on the caller's control
// thread, never concurrently with other callbacks from the same Scheduler.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
}
