package watch

import (
	"context"
	"log"
	"time"

	"parking-api/internal/model"
)

// DetailSource fetches the current detail of a parking.
type DetailSource interface {
	GetParkingDetail(ctx context.Context, id int64) (model.GetParkingDetailResponse, error)
}

// Change is reported when the available spaces of a parking differ from the
// previous poll. Previous is nil on the first successful poll.
type Change struct {
	Previous *model.ParkingDetail
	Current  model.ParkingDetail
}

// BecameAvailable reports whether the parking went from full to having space.
func (c Change) BecameAvailable() bool {
	return c.Previous != nil && c.Previous.AvailableSpaces == 0 && c.Current.AvailableSpaces > 0
}

// Watcher polls one parking on an interval.
type Watcher struct {
	source   DetailSource
	id       int64
	interval time.Duration
	onChange func(Change)
	onError  func(error)

	last *model.ParkingDetail
}

// New creates a watcher for parking id. onError may be nil, in which case
// poll errors are logged.
func New(source DetailSource, id int64, interval time.Duration, onChange func(Change), onError func(error)) *Watcher {
	if onError == nil {
		onError = func(err error) {
			log.Printf("Error polling parking %d: %v", id, err)
		}
	}
	return &Watcher{
		source:   source,
		id:       id,
		interval: interval,
		onChange: onChange,
		onError:  onError,
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	w.PollOnce(ctx)

	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			w.PollOnce(ctx)
			timer.Reset(w.interval)
		}
	}
}

// PollOnce fetches the parking once and reports a change if there is one.
func (w *Watcher) PollOnce(ctx context.Context) {
	detail, err := w.source.GetParkingDetail(ctx, w.id)
	if err != nil {
		if ctx.Err() == nil {
			w.onError(err)
		}
		return
	}

	if w.last != nil && w.last.AvailableSpaces == detail.AvailableSpaces {
		return
	}

	change := Change{Previous: w.last, Current: detail}
	w.last = &detail
	if w.onChange != nil {
		w.onChange(change)
	}
}
