package schedule

import (
	"sync"
	"time"
)

// Fire is posted to the owner's event loop when a wall-clock timer wakes up.
// The owner hands it back to Deliver on its control thread.
type Fire struct {
	id uint64
}

// Posted is a wall-clock Scheduler for event-loop owners such as a
// bubbletea program. Wake-ups arrive on timer goroutines and are only
// posted; callbacks run inside Deliver. Stop drops the callback from the
// registry, so a Fire already queued for a stopped timer is inert.
type Posted struct {
	mu   sync.Mutex
	post func(Fire)
	seq  uint64
	live map[uint64]*postedTimer
}

type postedTimer struct {
	p     *Posted
	id    uint64
	every time.Duration
	fn    func()
	timer *time.Timer
}

// NewPosted returns a scheduler that reports wake-ups through post. post may
// be nil and bound later with Bind, before any timer falls due.
func NewPosted(post func(Fire)) *Posted {
	return &Posted{post: post, live: make(map[uint64]*postedTimer)}
}

// Bind sets the function used to post wake-ups.
func (p *Posted) Bind(post func(Fire)) {
	p.mu.Lock()
	p.post = post
	p.mu.Unlock()
}

func (p *Posted) After(d time.Duration, fn func()) Handle {
	return p.arm(d, 0, fn)
}

func (p *Posted) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("schedule: non-positive interval")
	}
	return p.arm(d, d, fn)
}

func (p *Posted) arm(d, every time.Duration, fn func()) *postedTimer {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	t := &postedTimer{p: p, id: p.seq, every: every, fn: fn}
	p.live[t.id] = t
	t.timer = time.AfterFunc(d, t.wake)
	return t
}

func (t *postedTimer) wake() {
	t.p.mu.Lock()
	post := t.p.post
	_, alive := t.p.live[t.id]
	t.p.mu.Unlock()
	if !alive || post == nil {
		return
	}
	post(Fire{id: t.id})
}

func (t *postedTimer) Stop() bool {
	t.p.mu.Lock()
	defer t.p.mu.Unlock()
	if _, ok := t.p.live[t.id]; !ok {
		return false
	}
	delete(t.p.live, t.id)
	t.timer.Stop()
	return true
}

// Deliver runs the callback for f if its timer is still live and reports
// whether it ran. Periodic timers are re-armed after the callback unless
// the callback stopped them.
func (p *Posted) Deliver(f Fire) bool {
	p.mu.Lock()
	t, ok := p.live[f.id]
	if ok && t.every == 0 {
		delete(p.live, f.id)
	}
	p.mu.Unlock()
	if !ok {
		return false
	}
	t.fn()
	if t.every > 0 {
		p.mu.Lock()
		if _, still := p.live[t.id]; still {
			t.timer = time.AfterFunc(t.every, t.wake)
		}
		p.mu.Unlock()
	}
	return true
}

// Live counts timers that have not fired or been stopped.
func (p *Posted) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

// StopAll cancels every live timer.
func (p *Posted) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, t := range p.live {
		t.timer.Stop()
		delete(p.live, id)
	}
}
