// internal/storage/loans.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bibliotheca/internal/lending"
)

// loanDetailQuery joins each loan with the display fields callers need.
// Holder name and item title are read-time projections, never stored on
// the loan row.
const loanDetailQuery = `
	SELECT l.id, l.item_id, l.holder_id, l.loan_date, l.due_date,
	       l.return_date, l.status,
	       i.title AS item_title, i.author AS item_author,
	       h.name AS holder_name
	FROM loans l
	JOIN items i ON l.item_id = i.id
	JOIN holders h ON l.holder_id = h.id
`

// LoanStore is the postgres implementation of lending.LoanStore. It also
// serves reminder.LoanSource through FindActiveAll.
type LoanStore struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

func NewLoanStore(db *sqlx.DB) *LoanStore {
	return &LoanStore{
		db:     db,
		tracer: otel.Tracer("bibliotheca/storage"),
	}
}

// Insert persists a new loan row.
func (s *LoanStore) Insert(ctx context.Context, loan *lending.Loan) error {
	ctx, span := s.tracer.Start(ctx, "storage.loans.insert",
		trace.WithAttributes(
			attribute.String("loan.id", loan.ID.String()),
			attribute.String("item.id", loan.ItemID.String()),
		),
	)
	defer span.End()

	const query = `
		INSERT INTO loans (id, item_id, holder_id, loan_date, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		loan.ID, loan.ItemID, loan.HolderID, loan.LoanDate, loan.DueDate, loan.Status)
	if err != nil {
		return fmt.Errorf("failed to insert loan: %w", err)
	}
	return nil
}

// MarkReturned closes a loan if it is still active and returns the number of
// rows changed. Zero means the loan was already returned or does not exist.
func (s *LoanStore) MarkReturned(ctx context.Context, loanID uuid.UUID, returnDate time.Time) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.loans.mark_returned",
		trace.WithAttributes(attribute.String("loan.id", loanID.String())),
	)
	defer span.End()

	const query = `
		UPDATE loans
		SET return_date = $1, status = $2
		WHERE id = $3 AND status = $4
	`
	res, err := s.db.ExecContext(ctx, query,
		returnDate, lending.LoanStatusReturned, loanID, lending.LoanStatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to mark loan returned: %w", err)
	}
	return res.RowsAffected()
}

// FindByID returns one joined loan, or nil when absent.
func (s *LoanStore) FindByID(ctx context.Context, id uuid.UUID) (*lending.LoanDetail, error) {
	loan := &lending.LoanDetail{}
	err := s.db.GetContext(ctx, loan, loanDetailQuery+` WHERE l.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

// FindActiveByItem returns the item's active loan, or nil when none exists.
func (s *LoanStore) FindActiveByItem(ctx context.Context, itemID uuid.UUID) (*lending.Loan, error) {
	const query = `
		SELECT id, item_id, holder_id, loan_date, due_date, return_date, status
		FROM loans
		WHERE item_id = $1 AND status = $2
	`
	loan := &lending.Loan{}
	err := s.db.GetContext(ctx, loan, query, itemID, lending.LoanStatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active loan: %w", err)
	}
	return loan, nil
}

// FindByHolder lists all loans for one holder, newest first.
func (s *LoanStore) FindByHolder(ctx context.Context, holderID uuid.UUID) ([]lending.LoanDetail, error) {
	var loans []lending.LoanDetail
	err := s.db.SelectContext(ctx, &loans,
		loanDetailQuery+` WHERE l.holder_id = $1 ORDER BY l.loan_date DESC`, holderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holder loans: %w", err)
	}
	return loans, nil
}

// FindAll lists every loan, newest first.
func (s *LoanStore) FindAll(ctx context.Context) ([]lending.LoanDetail, error) {
	var loans []lending.LoanDetail
	err := s.db.SelectContext(ctx, &loans, loanDetailQuery+` ORDER BY l.loan_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

// FindActiveAll lists the active loans with display fields for reminder
// classification.
func (s *LoanStore) FindActiveAll(ctx context.Context) ([]lending.LoanDetail, error) {
	var loans []lending.LoanDetail
	err := s.db.SelectContext(ctx, &loans,
		loanDetailQuery+` WHERE l.status = $1 ORDER BY l.due_date ASC`, lending.LoanStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	return loans, nil
}

// AggregateCounts computes the dashboard counters in one round trip.
func (s *LoanStore) AggregateCounts(ctx context.Context) (*lending.DashboardStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM items) AS total_items,
			(SELECT COUNT(*) FROM items WHERE availability = 'available') AS available_items,
			(SELECT COUNT(*) FROM loans WHERE status = 'active') AS active_loans,
			(SELECT COUNT(*) FROM loans WHERE status = 'active' AND due_date < CURRENT_DATE) AS overdue_loans,
			(SELECT COUNT(*) FROM holders) AS holder_count
	`
	stats := &lending.DashboardStats{}
	if err := s.db.GetContext(ctx, stats, query); err != nil {
		return nil, fmt.Errorf("failed to aggregate counts: %w", err)
	}
	return stats, nil
}

// TopBorrowed ranks items by total historical loan count, descending.
func (s *LoanStore) TopBorrowed(ctx context.Context, limit int) ([]lending.BorrowCount, error) {
	const query = `
		SELECT i.title AS title, COUNT(l.id) AS loan_count
		FROM items i
		JOIN loans l ON l.item_id = i.id
		GROUP BY i.id, i.title
		ORDER BY COUNT(l.id) DESC
		LIMIT $1
	`
	var ranking []lending.BorrowCount
	if err := s.db.SelectContext(ctx, &ranking, query, limit); err != nil {
		return nil, fmt.Errorf("failed to rank borrowed items: %w", err)
	}
	return ranking, nil
}
