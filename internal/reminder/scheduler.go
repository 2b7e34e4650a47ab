// internal/reminder/scheduler.go
package reminder

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultInterval is the pause between reminder cycles.
const DefaultInterval = 24 * time.Hour

// Scheduler runs reminder cycles on a fixed interval until its context is
// cancelled. A failed cycle is reported and skipped; the loop keeps going.
type Scheduler struct {
	service  Service
	interval time.Duration
	log      *slog.Logger
	tracer   trace.Tracer
}

// NewScheduler creates a scheduler around the reminder service.
func NewScheduler(service Service, interval time.Duration, log *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		service:  service,
		interval: interval,
		log:      log,
		tracer:   otel.Tracer("bibliotheca/reminder"),
	}
}

// Run executes one cycle immediately, then one per interval. It returns when
// ctx is cancelled, including during the sleep between cycles.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("reminder scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.runCycle(ctx)

		select {
		case <-ctx.Done():
			s.log.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "reminder.cycle")
	defer span.End()

	logged, err := s.service.TriggerCycle(ctx)
	if err != nil {
		span.SetAttributes(attribute.Bool("cycle.failed", true))
		s.log.Error("reminder cycle failed", "error", err)
		return
	}

	span.SetAttributes(attribute.Int("reminders.logged", len(logged)))
	s.log.Info("reminder cycle complete", "logged", len(logged))
}
