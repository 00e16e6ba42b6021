package schedule

import "time"

// Manual is a virtual-time Scheduler. Nothing fires until Advance is called,
// and callbacks run synchronously inside Advance in due-time order.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	m     *Manual
	id    uint64
	at    time.Duration
	every time.Duration
	fn    func()
}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) After(d time.Duration, fn func()) Handle {
	return m.arm(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("schedule: non-positive interval")
	}
	return m.arm(d, d, fn)
}

func (m *Manual) arm(d, every time.Duration, fn func()) *manualTimer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, id: m.seq, at: m.now + d, every: every, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Now is the virtual time elapsed since the scheduler was created.
func (m *Manual) Now() time.Duration { return m.now }

// Pending counts live timers.
func (m *Manual) Pending() int { return len(m.timers) }

// Advance moves virtual time forward by d, firing every timer that falls due.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.now = t.at
		if t.every > 0 {
			t.at += t.every
		} else {
			m.remove(t.id)
		}
		t.fn()
	}
	m.now = target
}

func (m *Manual) next(limit time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.at > limit {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (m *Manual) remove(id uint64) bool {
	for i, t := range m.timers {
		if t.id == id {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

func (t *manualTimer) Stop() bool { return t.m.remove(t.id) }
