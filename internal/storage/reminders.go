// internal/storage/reminders.go
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bibliotheca/internal/reminder"
)

// ReminderStore is the postgres implementation of reminder.Store. The table
// is append-only; no uniqueness constraint deduplicates (loan, type) pairs.
type ReminderStore struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

func NewReminderStore(db *sqlx.DB) *ReminderStore {
	return &ReminderStore{
		db:     db,
		tracer: otel.Tracer("bibliotheca/storage"),
	}
}

// Append records that a reminder of the given type was issued for the loan.
func (s *ReminderStore) Append(ctx context.Context, loanID uuid.UUID, reminderType string, sentAt time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.reminders.append",
		trace.WithAttributes(
			attribute.String("loan.id", loanID.String()),
			attribute.String("reminder.type", reminderType),
		),
	)
	defer span.End()

	const query = `
		INSERT INTO reminder_history (id, loan_id, reminder_type, sent_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, uuid.New(), loanID, reminderType, sentAt); err != nil {
		return fmt.Errorf("failed to append reminder: %w", err)
	}
	return nil
}

// History lists reminder records joined with display fields, newest first,
// optionally scoped to one loan.
func (s *ReminderStore) History(ctx context.Context, loanID *uuid.UUID, limit int) ([]reminder.Record, error) {
	query := `
		SELECT rh.id, rh.loan_id, rh.reminder_type, rh.sent_at,
		       i.title AS item_title, h.name AS holder_name
		FROM reminder_history rh
		JOIN loans l ON rh.loan_id = l.id
		JOIN items i ON l.item_id = i.id
		JOIN holders h ON l.holder_id = h.id
	`
	args := []any{limit}
	if loanID != nil {
		query += ` WHERE rh.loan_id = $2`
		args = append(args, *loanID)
	}
	query += ` ORDER BY rh.sent_at DESC LIMIT $1`

	var records []reminder.Record
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list reminder history: %w", err)
	}
	return records, nil
}
