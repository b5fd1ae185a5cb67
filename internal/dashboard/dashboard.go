// Package dashboard holds the upload state behind the equipment dashboard,
// derives chart data from the backend summary and renders the page.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"github.com/Sameer280406/Projects/internal/models"
)

// Uploader sends a file to the processing backend.
type Uploader interface {
	Upload(ctx context.Context, fileName string, data []byte) (*models.Summary, error)
}

// Logger is the subset of gommon/echo logging the dashboard writes to.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(d *Dashboard) { d.logger = l }
}

// WithChartStyle replaces the default chart labels and colors.
func WithChartStyle(s *ChartStyle) Option {
	return func(d *Dashboard) {
		if s != nil {
			d.style = s
		}
	}
}

// Dashboard owns the upload state and runs uploads against the backend.
type Dashboard struct {
	uploader Uploader
	logger   Logger
	style    *ChartStyle

	mu    sync.RWMutex
	state State

	subsMu sync.Mutex
	subs   map[string]chan State
}

// New creates a Dashboard in the idle state.
func New(uploader Uploader, opts ...Option) *Dashboard {
	d := &Dashboard{
		uploader: uploader,
		logger:   log.New("dashboard"),
		style:    DefaultChartStyle(),
		subs:     make(map[string]chan State),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleFileSelected starts an upload attempt for the given file. The file
// name, cleared error and loading flag are visible as soon as it returns;
// the returned channel closes once the backend call has finished and its
// outcome (if still current) has been applied.
func (d *Dashboard) HandleFileSelected(fileName string, data []byte) <-chan struct{} {
	d.mu.Lock()
	attempt := d.state.startUpload(fileName)
	snapshot := d.state
	d.mu.Unlock()
	d.publish(snapshot)

	traceID := uuid.New().String()[:8]
	d.logger.Infof("[Upload %s] attempt %d: sending %s (%d bytes)", traceID, attempt, fileName, len(data))

	done := make(chan struct{})
	go func() {
		defer close(done)
		start := time.Now()

		summary, err := d.uploader.Upload(context.Background(), fileName, data)

		d.mu.Lock()
		var applied bool
		if err != nil {
			d.logger.Errorf("[Upload %s] attempt %d failed after %dms: %v", traceID, attempt, time.Since(start).Milliseconds(), err)
			applied = d.state.applyFailure(attempt, FailureMessage)
		} else {
			applied = d.state.applySuccess(attempt, summary)
		}
		snapshot := d.state
		d.mu.Unlock()

		if !applied {
			d.logger.Infof("[Upload %s] attempt %d superseded by %d, outcome discarded", traceID, attempt, snapshot.Attempt)
			return
		}
		if err == nil {
			d.logger.Infof("[Upload %s] attempt %d complete in %dms", traceID, attempt, time.Since(start).Milliseconds())
		}
		d.publish(snapshot)
	}()

	return done
}

// State returns a copy of the current state.
func (d *Dashboard) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// View returns the current state together with everything derived from it.
func (d *Dashboard) View() View {
	return d.style.NewView(d.State())
}

// ChartStyle returns the style charts are derived with.
func (d *Dashboard) ChartStyle() *ChartStyle {
	return d.style
}

// Subscribe returns a channel that receives the state after every change,
// and a func that stops the subscription. Slow readers only ever see the
// most recent state.
func (d *Dashboard) Subscribe() (<-chan State, func()) {
	id := uuid.New().String()
	ch := make(chan State, 1)

	d.subsMu.Lock()
	d.subs[id] = ch
	d.subsMu.Unlock()

	return ch, func() {
		d.subsMu.Lock()
		defer d.subsMu.Unlock()
		if _, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(ch)
		}
	}
}

func (d *Dashboard) publish(st State) {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()

	for _, ch := range d.subs {
		select {
		case ch <- st:
		default:
			// Drop the stale pending state in favour of this one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}
