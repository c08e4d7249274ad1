package pkg

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// OverviewSource produces a decoded overview. *ApiMetadata is the
// production implementation.
type OverviewSource interface {
	GetCovidOverview(ctx context.Context) (*CityCovidOverview, error)
}

// Result is the single resolution of a Refresh.
type Result struct {
	Dashboard *Dashboard
	Err       error
}

// Loader owns the dashboard state. Each Refresh fully replaces it; a
// refresh started later supersedes and cancels any earlier one.
type Loader struct {
	source  OverviewSource
	metrics *Metrics
	now     func() time.Time

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	current    *Dashboard
	lastErr    error
}

func NewLoader(source OverviewSource, metrics *Metrics) *Loader {
	return &Loader{
		source:  source,
		metrics: metrics,
		now:     time.Now,
	}
}

// Refresh starts a fetch and returns a channel that yields exactly one
// Result and is then closed.
func (l *Loader) Refresh(ctx context.Context) <-chan Result {
	fetchCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.generation++
	generation := l.generation
	l.cancel = cancel
	l.mu.Unlock()

	results := make(chan Result, 1)
	go func() {
		defer close(results)
		defer cancel()

		start := time.Now()
		overview, err := l.source.GetCovidOverview(fetchCtx)
		l.metrics.observe(err, time.Since(start))

		result := Result{Err: err}
		if err == nil {
			result.Dashboard = NewDashboard(overview, l.now())
		}
		l.store(generation, result)
		results <- result
	}()
	return results
}

func (l *Loader) Load(ctx context.Context) (*Dashboard, error) {
	result := <-l.Refresh(ctx)
	return result.Dashboard, result.Err
}

func (l *Loader) store(generation uint64, result Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if generation != l.generation {
		log.Debug().Uint64("generation", generation).Msg("Discarding superseded overview fetch")
		return
	}
	l.cancel = nil
	l.current = result.Dashboard
	l.lastErr = result.Err
	if result.Err != nil {
		log.Err(result.Err).Str("kind", ErrorKind(result.Err)).Msg("Failed to load covid overview")
		return
	}
	log.Info().Int("entries", len(result.Dashboard.Entries)).
		Str("total_case", result.Dashboard.Summary.TotalCase).
		Str("new_case", result.Dashboard.Summary.NewCase).
		Msg("Loaded covid overview")
}

// Current returns the dashboard of the latest completed fetch, or that
// fetch's error.
func (l *Loader) Current() (*Dashboard, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lastErr != nil {
		return nil, l.lastErr
	}
	if l.current == nil {
		return nil, ErrNoOverview
	}
	return l.current, nil
}

func (l *Loader) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
