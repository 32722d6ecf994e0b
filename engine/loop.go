package engine

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled callback, the zero Handle is never issued
type Handle uint64

// Callback receives the loop time of the frame it runs in
type Callback func(now time.Time)

// Loop is a single-threaded cooperative scheduler driven by the render loop.
// It offers a per-frame callback (display refresh analogue) and wall-clock timers.
// All methods must be called from the goroutine that calls RunFrame.
type Loop struct {
	clock TimeProvider

	nextID Handle
	seq    uint64

	live   map[Handle]*task
	timers taskHeap
	frames []*task

	frameCount uint64
}

type task struct {
	id       Handle
	seq      uint64
	due      time.Time
	interval time.Duration // 0 for one-shot timers and frame callbacks
	fn       Callback
	index    int // heap position, -1 when not queued as a timer
}

// NewLoop creates a loop reading time from clock
func NewLoop(clock TimeProvider) *Loop {
	return &Loop{
		clock: clock,
		live:  make(map[Handle]*task),
	}
}

// Now returns the loop clock time
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// FrameCount returns the number of RunFrame calls so far
func (l *Loop) FrameCount() uint64 {
	return l.frameCount
}

// Pending returns the number of callbacks that may still run
func (l *Loop) Pending() int {
	return len(l.live)
}

// RequestFrame runs fn once on the next frame
func (l *Loop) RequestFrame(fn Callback) Handle {
	t := l.newTask(fn)
	l.frames = append(l.frames, t)
	return t.id
}

// AfterFunc runs fn once on the first frame at or after now+d
func (l *Loop) AfterFunc(d time.Duration, fn Callback) Handle {
	return l.schedule(d, 0, fn)
}

// Every runs fn every interval until cancelled.
// Intervals missed during a stall are skipped rather than replayed.
func (l *Loop) Every(interval time.Duration, fn Callback) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return l.schedule(interval, interval, fn)
}

// Cancel removes a pending callback, returns false if it already ran or was cancelled
func (l *Loop) Cancel(h Handle) bool {
	t, ok := l.live[h]
	if !ok {
		return false
	}
	delete(l.live, h)
	if t.index >= 0 {
		heap.Remove(&l.timers, t.index)
	}
	// Frame callbacks are dropped lazily when the frame queue drains
	return true
}

// RunFrame fires due timers in due order, then the frame callbacks requested before this call.
// Callbacks scheduled while running wait for the next frame.
func (l *Loop) RunFrame() {
	now := l.clock.Now()
	l.frameCount++

	var due []*task
	for len(l.timers) > 0 && !l.timers[0].due.After(now) {
		due = append(due, heap.Pop(&l.timers).(*task))
	}

	for _, t := range due {
		if _, ok := l.live[t.id]; !ok {
			continue
		}
		if t.interval == 0 {
			delete(l.live, t.id)
		}

		t.fn(now)

		if t.interval == 0 {
			continue
		}
		// Callback may have cancelled its own timer
		if _, ok := l.live[t.id]; !ok {
			continue
		}
		t.due = t.due.Add(t.interval)
		if !t.due.After(now) {
			t.due = now.Add(t.interval)
		}
		l.seq++
		t.seq = l.seq
		heap.Push(&l.timers, t)
	}

	frames := l.frames
	l.frames = nil
	for _, t := range frames {
		if _, ok := l.live[t.id]; !ok {
			continue
		}
		delete(l.live, t.id)
		t.fn(now)
	}
}

func (l *Loop) schedule(delay, interval time.Duration, fn Callback) Handle {
	if delay < 0 {
		delay = 0
	}
	t := l.newTask(fn)
	t.due = l.clock.Now().Add(delay)
	t.interval = interval
	heap.Push(&l.timers, t)
	return t.id
}

func (l *Loop) newTask(fn Callback) *task {
	l.nextID++
	l.seq++
	t := &task{
		id:    l.nextID,
		seq:   l.seq,
		fn:    fn,
		index: -1,
	}
	l.live[t.id] = t
	return t
}

// taskHeap orders timers by due time, then registration order
type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
