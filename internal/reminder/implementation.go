// internal/reminder/implementation.go
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const historyLimit = 100

// bucket is one reminder trigger band. The window is what gets classified;
// the min/max band is what actually gets logged, so an on-demand caller can
// ask for a wide lookahead without the scheduler re-logging every day of it.
type bucket struct {
	reminderType string
	windowDays   int
	minDays      int
	maxDays      int
}

var dueSoonBuckets = []bucket{
	{reminderType: TypeDueSoon30, windowDays: 30, minDays: 28, maxDays: 30},
	{reminderType: TypeDueSoon5, windowDays: 5, minDays: 3, maxDays: 5},
}

// service implements the Service interface.
type service struct {
	loans LoanSource
	store Store
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a new reminder service instance.
func NewService(loans LoanSource, store Store, log *slog.Logger) Service {
	return &service{
		loans: loans,
		store: store,
		now:   time.Now,
		log:   log,
	}
}

// NewServiceWithClock creates a reminder service with a fixed time source.
func NewServiceWithClock(loans LoanSource, store Store, log *slog.Logger, now func() time.Time) Service {
	return &service{
		loans: loans,
		store: store,
		now:   now,
		log:   log,
	}
}

// UpcomingDue lists active loans due within windowDays.
func (s *service) UpcomingDue(ctx context.Context, windowDays int) ([]Candidate, error) {
	loans, err := s.loans.FindActiveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active loans: %w", err)
	}
	return UpcomingDue(loans, s.now(), windowDays), nil
}

// Overdue lists active loans past their due date.
func (s *service) Overdue(ctx context.Context) ([]Candidate, error) {
	loans, err := s.loans.FindActiveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active loans: %w", err)
	}
	return Overdue(loans, s.now()), nil
}

// LogReminder appends one reminder record. Repeated calls with the same
// loan and type append additional rows.
func (s *service) LogReminder(ctx context.Context, loanID uuid.UUID, reminderType string) error {
	if err := s.store.Append(ctx, loanID, reminderType, s.now()); err != nil {
		return fmt.Errorf("failed to append reminder: %w", err)
	}
	s.log.Info("reminder logged", "loan_id", loanID, "type", reminderType)
	return nil
}

// History lists reminder records, newest first, optionally scoped to one loan.
func (s *service) History(ctx context.Context, loanID *uuid.UUID) ([]Record, error) {
	records, err := s.store.History(ctx, loanID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminder history: %w", err)
	}
	return records, nil
}

// TriggerCycle runs one classification-and-log pass and returns every
// candidate that was logged. The background scheduler and the manual
// trigger endpoint share this path.
func (s *service) TriggerCycle(ctx context.Context) ([]Candidate, error) {
	loans, err := s.loans.FindActiveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active loans: %w", err)
	}

	now := s.now()
	var logged []Candidate

	for _, b := range dueSoonBuckets {
		for _, c := range UpcomingDue(loans, now, b.windowDays) {
			if c.DaysUntilDue < b.minDays || c.DaysUntilDue > b.maxDays {
				continue
			}
			if err := s.LogReminder(ctx, c.LoanID, b.reminderType); err != nil {
				return nil, err
			}
			logged = append(logged, c)
		}
	}

	for _, c := range Overdue(loans, now) {
		s.log.Warn("loan overdue", "loan_id", c.LoanID, "holder", c.HolderName, "item", c.ItemTitle, "days_overdue", c.DaysOverdue)
		if err := s.LogReminder(ctx, c.LoanID, TypeOverdue); err != nil {
			return nil, err
		}
		logged = append(logged, c)
	}

	return logged, nil
}
