package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleSweeper closes chat panels nobody touched for a while.
type IdleSweeper interface {
	SweepIdle(ctx context.Context, maxIdle time.Duration) int
}

// SessionSweeper runs the idle sweep on a cron schedule.
type SessionSweeper struct {
	cron    *cron.Cron
	chats   IdleSweeper
	maxIdle time.Duration
	logger  *zap.Logger
}

// NewSessionSweeper schedules the sweep. schedule accepts the cron
// descriptors, e.g. "@every 1m".
func NewSessionSweeper(chats IdleSweeper, schedule string, maxIdle time.Duration, logger *zap.Logger) (*SessionSweeper, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SessionSweeper{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		chats:   chats,
		maxIdle: maxIdle,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, fmt.Errorf("schedule session sweep %q: %w", schedule, err)
	}
	return s, nil
}

// Sweep runs one pass.
func (s *SessionSweeper) Sweep() {
	closed := s.chats.SweepIdle(context.Background(), s.maxIdle)
	if closed > 0 {
		s.logger.Info("idle chat sessions closed", zap.Int("count", closed), zap.Duration("max_idle", s.maxIdle))
	}
}

// Start begins running the schedule in its own goroutine.
func (s *SessionSweeper) Start() {
	s.cron.Start()
	s.logger.Info("chat session sweeper started", zap.Duration("max_idle", s.maxIdle))
}

// Stop halts the schedule and waits for a running sweep to finish or ctx
// to expire.
func (s *SessionSweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
