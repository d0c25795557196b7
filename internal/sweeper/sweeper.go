package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/studyplan/internal/store"
	"github.com/me/studyplan/pkg/model"
)

// Config holds sweeper configuration.
type Config struct {
	Interval time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Interval: time.Minute}
}

// Loop periodically marks pending and in-progress tasks whose due date has
// passed as overdue. The overdue status feeds the planner's scoring, so the
// sweep keeps task urgency honest without any user action.
type Loop struct {
	store  store.Store
	config Config
	logger *slog.Logger
	now    func() time.Time
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewLoop creates a new sweeper loop.
func NewLoop(st store.Store, cfg Config, logger *slog.Logger) *Loop {
	return &Loop{
		store:  st,
		config: cfg,
		logger: logger.With("component", "sweeper"),
		now:    time.Now,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start begins the sweep loop. Blocks until ctx is cancelled or Stop is called.
func (l *Loop) Start(ctx context.Context) error {
	l.logger.Info("sweeper started", "interval", l.config.Interval)
	ticker := time.NewTicker(l.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("sweeper stopping (context cancelled)")
			close(l.doneCh)
			return ctx.Err()
		case <-l.stopCh:
			l.logger.Info("sweeper stopping (stop called)")
			close(l.doneCh)
			return nil
		case <-ticker.C:
			if err := l.Tick(ctx); err != nil {
				l.logger.Error("tick error", "error", err)
			}
		}
	}
}

// Stop gracefully shuts down the sweeper and waits for the current tick to finish.
func (l *Loop) Stop() error {
	close(l.stopCh)
	<-l.doneCh
	return nil
}

// Tick runs a single sweep iteration. Used directly in tests.
func (l *Loop) Tick(ctx context.Context) error {
	now := l.now()

	due, err := l.store.ListDueTasks(ctx, now)
	if err != nil {
		return fmt.Errorf("list due tasks: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	marked := 0
	for _, task := range due {
		task.Status = model.TaskStatusOverdue
		task.UpdatedAt = now
		if err := l.store.UpdateTask(ctx, task); err != nil {
			return fmt.Errorf("mark task %s overdue: %w", task.ID, err)
		}
		marked++
	}

	l.logger.Info("sweep complete", "marked_overdue", marked)
	return nil
}
