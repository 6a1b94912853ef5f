package player

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/screenroom/screenroom/source"
)

// Start records one Recorder.Start call.
type Start struct {
	Item  *source.Item
	Sound SoundOptions
}

// Recorder is an in-memory Renderer that records every call. It is meant for tests.
type Recorder struct {
	mu     sync.Mutex
	starts []Start
	events []string
	fail   error
}

// FailNextStart makes the next Start return err.
func (r *Recorder) FailNextStart(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = err
}

func (r *Recorder) Name() string {
	return "recorder"
}

func (r *Recorder) Start(_ context.Context, item *source.Item, opts SoundOptions) (Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		err := r.fail
		r.fail = nil
		return nil, err
	}

	r.starts = append(r.starts, Start{Item: item, Sound: opts})
	r.events = append(r.events, "start:"+item.ID)
	return &recordedInstance{recorder: r, id: item.ID}, nil
}

// Starts returns every successful Start call in order.
func (r *Recorder) Starts() []Start {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Start(nil), r.starts...)
}

// LastStart returns the most recent Start call.
func (r *Recorder) LastStart() (Start, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.starts) == 0 {
		return Start{}, false
	}
	return r.starts[len(r.starts)-1], true
}

// Events returns every call as "op:item" strings.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *Recorder) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

var errStopped = errors.New("instance stopped")

type recordedInstance struct {
	recorder *Recorder
	id       string
	mu       sync.Mutex
	stopped  bool
}

func (i *recordedInstance) do(op string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.stopped {
		return errStopped
	}

	i.recorder.record(op + ":" + i.id)
	return nil
}

func (i *recordedInstance) Pause() error  { return i.do("pause") }
func (i *recordedInstance) Resume() error { return i.do("resume") }

func (i *recordedInstance) SetVolume(v float64) error {
	return i.do(fmt.Sprintf("volume=%.2f", v))
}

func (i *recordedInstance) SetRolloff(d float64) error {
	return i.do(fmt.Sprintf("rolloff=%.1f", d))
}

func (i *recordedInstance) Stop() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.stopped {
		return nil
	}

	i.stopped = true
	i.recorder.record("stop:" + i.id)
	return nil
}
