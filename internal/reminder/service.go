// internal/reminder/service.go
package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bibliotheca/internal/lending"
)

// Service defines the interface for the reminder service.
type Service interface {
	UpcomingDue(ctx context.Context, windowDays int) ([]Candidate, error)
	Overdue(ctx context.Context) ([]Candidate, error)
	LogReminder(ctx context.Context, loanID uuid.UUID, reminderType string) error
	History(ctx context.Context, loanID *uuid.UUID) ([]Record, error)
	TriggerCycle(ctx context.Context) ([]Candidate, error)
}

// LoanSource supplies the active loans, joined with display fields, that a
// cycle classifies.
type LoanSource interface {
	FindActiveAll(ctx context.Context) ([]lending.LoanDetail, error)
}

// Store appends to and reads the reminder history ledger.
type Store interface {
	Append(ctx context.Context, loanID uuid.UUID, reminderType string, sentAt time.Time) error
	History(ctx context.Context, loanID *uuid.UUID, limit int) ([]Record, error)
}
