package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/lineup-readiness/internal/platform/logging"
)

type LeagueLoader interface {
	Load(ctx context.Context, leagueID string) (Report, error)
}

type LeagueLoaderFunc func(ctx context.Context, leagueID string) (Report, error)

func (f LeagueLoaderFunc) Load(ctx context.Context, leagueID string) (Report, error) {
	return f(ctx, leagueID)
}

// SessionSnapshot is the observable state of the current league selection.
// Report is nil while loading and after a failed load.
type SessionSnapshot struct {
	LeagueID   string
	Generation uint64
	Loading    bool
	Error      string
	Report     *Report
	UpdatedAt  time.Time
}

// LoadCoordinator runs at most one visible league load at a time. Each
// submission bumps the generation and cancels the previous load; results
// from an older generation are discarded.
type LoadCoordinator struct {
	loader  LeagueLoader
	timeout time.Duration
	logger  *logging.Logger
	now     func() time.Time

	base       context.Context
	stop       context.CancelFunc
	inflight   sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	generation uint64
	cancel     context.CancelFunc
	snapshot   SessionSnapshot
}

func NewLoadCoordinator(loader LeagueLoader, timeout time.Duration, logger *logging.Logger) *LoadCoordinator {
	if logger == nil {
		logger = logging.Default()
	}
	base, stop := context.WithCancel(context.Background())
	return &LoadCoordinator{
		loader:  loader,
		timeout: timeout,
		logger:  logger.Named("session"),
		now:     time.Now,
		base:    base,
		stop:    stop,
	}
}

// Submit starts loading leagueID in the background and returns the loading
// snapshot immediately.
func (c *LoadCoordinator) Submit(leagueID string) (SessionSnapshot, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return SessionSnapshot{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return SessionSnapshot{}, fmt.Errorf("%w: session is closed", ErrDependencyUnavailable)
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	generation := c.generation

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(c.base, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(c.base)
	}
	c.cancel = cancel
	c.snapshot = SessionSnapshot{
		LeagueID:   leagueID,
		Generation: generation,
		Loading:    true,
		UpdatedAt:  c.now().UTC(),
	}
	snapshot := c.snapshot
	c.inflight.Add(1)
	c.mu.Unlock()

	go c.run(ctx, cancel, generation, leagueID)
	return snapshot, nil
}

func (c *LoadCoordinator) Snapshot() SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Close cancels any in-flight load and waits for it to return. Submit fails
// once Close has started.
func (c *LoadCoordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.stop()
	c.mu.Unlock()
	c.inflight.Wait()
}

func (c *LoadCoordinator) run(ctx context.Context, cancel context.CancelFunc, generation uint64, leagueID string) {
	defer c.inflight.Done()
	defer cancel()

	report, err := c.loader.Load(ctx, leagueID)
	if applyErr := c.apply(generation, report, err); applyErr != nil {
		if errors.Is(applyErr, errStaleLoad) {
			c.logger.Debug("discarding stale league load", "league_id", leagueID, "generation", generation)
		}
		return
	}
	if err != nil {
		c.logger.Warn("league load failed", "league_id", leagueID, "generation", generation, "error", err)
	}
}

func (c *LoadCoordinator) apply(generation uint64, report Report, loadErr error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return errStaleLoad
	}

	c.cancel = nil
	c.snapshot.Loading = false
	c.snapshot.UpdatedAt = c.now().UTC()
	if loadErr != nil {
		c.snapshot.Error = loadErr.Error()
		c.snapshot.Report = nil
		return nil
	}

	c.snapshot.Error = ""
	c.snapshot.Report = &report
	return nil
}
