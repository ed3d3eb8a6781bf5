package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"go.uber.org/zap"
)

const defaultRestartDelay = 5 * time.Second

// Supervisor keeps a block pump running, restarting it after transient failures.
type Supervisor struct {
	logger       *zap.Logger
	pump         Pump
	synchronizer *Synchronizer
	restartDelay time.Duration
	sleep        func(context.Context, time.Duration) error
}

// NewSupervisor creates a Supervisor.
func NewSupervisor(pump Pump, synchronizer *Synchronizer, restartDelay time.Duration, logger *zap.Logger) *Supervisor {
	if restartDelay <= 0 {
		restartDelay = defaultRestartDelay
	}
	return &Supervisor{
		logger:       logger.Named("supervisor"),
		pump:         pump,
		synchronizer: synchronizer,
		restartDelay: restartDelay,
		sleep:        clock.SleepWithContext,
	}
}

// Run blocks until ctx is canceled, the pump stops cleanly or a consistency error
// occurs.
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		if err := s.pump.Start(ctx, s.synchronizer); err != nil {
			return fmt.Errorf("start pump: %w", err)
		}

		var err error
		select {
		case <-ctx.Done():
			s.pump.Stop()
			return ctx.Err()
		case err = <-s.synchronizer.Done():
		}
		s.pump.Stop()

		switch {
		case err == nil:
			return nil
		case errors.Is(err, model.ErrInconsistent):
			s.logger.Error("chain state is inconsistent, giving up", zap.Error(err))
			return err
		}

		s.logger.Warn("pump failed, restarting", zap.Error(err), zap.Duration("sleep", s.restartDelay))
		if err := s.sleep(ctx, s.restartDelay); err != nil {
			return err
		}
	}
}
