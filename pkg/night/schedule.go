package night

import (
	"container/heap"
	"time"
)

// Scheduler is a one-shot callback queue keyed by elapsed time. Callbacks
// due at the same instant run in the order they were scheduled.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	items timerHeap
}

type timer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

type timerHeap []timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at == h[j].at {
		return h[i].seq < h[j].seq
	}
	return h[i].at < h[j].at
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)   { *h = append(*h, x.(timer)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = timer{}
	*h = old[:n-1]
	return t
}

// After schedules fn to run once d has elapsed from now.
func (s *Scheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	heap.Push(&s.items, timer{at: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves time forward and runs every callback that became due,
// including ones scheduled by callbacks during this call. Each callback sees
// the clock at its own due time, so rescheduling keeps its cadence however
// coarse dt is.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now
	if dt > 0 {
		target += dt
	}
	for len(s.items) > 0 && s.items[0].at <= target {
		t := heap.Pop(&s.items).(timer)
		if t.at > s.now {
			s.now = t.at
		}
		t.fn()
	}
	s.now = target
}

// Reset drops pending callbacks and rewinds the clock.
func (s *Scheduler) Reset() {
	s.items = nil
	s.now = 0
}

// Now is the elapsed time since the last Reset.
func (s *Scheduler) Now() time.Duration { return s.now }

// Len is the number of pending callbacks.
func (s *Scheduler) Len() int { return len(s.items) }
