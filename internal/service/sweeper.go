package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/moodlog/backend/internal/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepTimeout = time.Minute

type SweeperConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// RevocationSweeper periodically deletes revocation records older than the
// retention window. Sweeps never overlap.
type RevocationSweeper struct {
	store   RevocationStore
	cfg     SweeperConfig
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

func NewRevocationSweeper(store RevocationStore, cfg SweeperConfig, log *zap.Logger, m *metrics.Metrics) *RevocationSweeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &RevocationSweeper{store: store, cfg: cfg, log: log, metrics: m, now: time.Now}
}

// Start schedules a sweep every Interval. Calling Start twice is an error.
func (s *RevocationSweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return errors.New("revocation sweeper already started")
	}
	if s.cfg.Interval <= 0 || s.cfg.Retention <= 0 {
		return fmt.Errorf("%w: sweeper interval and retention must be positive", ErrInvalidInput)
	}

	logger := cronLogger{s.log.Sugar()}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc("@every "+s.cfg.Interval.String(), s.run); err != nil {
		return err
	}
	c.Start()
	s.cron = c

	s.log.Info("revocation sweeper started",
		zap.Duration("interval", s.cfg.Interval),
		zap.Duration("retention", s.cfg.Retention),
	)
	return nil
}

// Stop unschedules the sweeper and waits for a running sweep to finish.
func (s *RevocationSweeper) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	s.log.Info("revocation sweeper stopped")
}

// SweepOnce evicts every record revoked before now minus Retention.
func (s *RevocationSweeper) SweepOnce(ctx context.Context) (int64, error) {
	now := s.now()
	cutoff := now.Add(-s.cfg.Retention)

	removed, err := s.store.EvictOlderThan(ctx, cutoff)
	if err != nil {
		if s.metrics != nil {
			s.metrics.SweepFailures.Inc()
		}
		s.log.Error("revocation sweep failed", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.SweepEvicted.Add(float64(removed))
		s.metrics.SweepLastSuccess.Set(float64(now.Unix()))
	}
	s.log.Info("revocation sweep finished", zap.Time("cutoff", cutoff), zap.Int64("removed", removed))
	return removed, nil
}

func (s *RevocationSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	_, _ = s.SweepOnce(ctx)
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
