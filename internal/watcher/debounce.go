package watcher

import (
	"context"
	"sync"
	"time"
)

// debouncer coalesces rapid change events into a single batch, keeping the
// newest event per path.
type debouncer struct {
	delay  time.Duration
	input  chan ChangeEvent
	output chan []ChangeEvent

	mu      sync.Mutex
	timer   *time.Timer
	pending []ChangeEvent
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		input:  make(chan ChangeEvent, 128),
		output: make(chan []ChangeEvent, 8),
	}
}

func (d *debouncer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.input:
			d.schedule(event)
		}
	}
}

func (d *debouncer) add(event ChangeEvent) {
	select {
	case d.input <- event:
	default:
		// Input saturated; the pending batch already triggers a rebuild.
	}
}

func (d *debouncer) schedule(event ChangeEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = append(d.pending, event)
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		return
	}

	latest := make(map[string]ChangeEvent, len(d.pending))
	order := make([]string, 0, len(d.pending))
	for _, event := range d.pending {
		if _, seen := latest[event.Path]; !seen {
			order = append(order, event.Path)
		}
		latest[event.Path] = event
	}

	batch := make([]ChangeEvent, 0, len(order))
	for _, path := range order {
		batch = append(batch, latest[path])
	}

	select {
	case d.output <- batch:
	default:
	}

	d.pending = d.pending[:0]
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
