package tracker

import (
	"sync"
	"time"
)

// Task is a handle to a scheduled periodic callback.
// Cancel is idempotent and safe to call from within the callback.
type Task interface {
	Cancel()
}

// Scheduler arms periodic callbacks.
type Scheduler interface {
	Every(period time.Duration, fn func()) Task
}

// TickerScheduler runs every task on its own time.Ticker goroutine.
type TickerScheduler struct{}

type tickerTask struct {
	done chan struct{}
	once sync.Once
}

func (t *tickerTask) Cancel() {
	t.once.Do(func() { close(t.done) })
}

// Every calls fn once per period until the task is cancelled.
func (TickerScheduler) Every(period time.Duration, fn func()) Task {
	task := &tickerTask{done: make(chan struct{})}
	ticker := time.NewTicker(period)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-task.done:
				return
			case <-ticker.C:
				select {
				case <-task.done:
					return
				default:
					fn()
				}
			}
		}
	}()

	return task
}

// ManualScheduler holds tasks until Fire is called.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	scheduler *ManualScheduler
	period    time.Duration
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	t.cancelled = true
}

func (s *ManualScheduler) Every(period time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &manualTask{scheduler: s, period: period, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

// Live returns the number of tasks that have not been cancelled.
func (s *ManualScheduler) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Fire runs every live task once. Tasks armed during Fire wait for the next call.
func (s *ManualScheduler) Fire() {
	s.mu.Lock()
	live := make([]*manualTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.tasks = live
	s.mu.Unlock()

	for _, t := range live {
		s.mu.Lock()
		cancelled := t.cancelled
		s.mu.Unlock()

		if !cancelled {
			t.fn()
		}
	}
}
