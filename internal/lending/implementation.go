// internal/lending/implementation.go
package lending

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const topBorrowedLimit = 5

// service implements the Service interface.
type service struct {
	items ItemStore
	loans LoanStore
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a new lending service instance.
func NewService(items ItemStore, loans LoanStore, log *slog.Logger) Service {
	return &service{
		items: items,
		loans: loans,
		now:   time.Now,
		log:   log,
	}
}

// NewServiceWithClock creates a lending service with a fixed time source.
func NewServiceWithClock(items ItemStore, loans LoanStore, log *slog.Logger, now func() time.Time) Service {
	return &service{
		items: items,
		loans: loans,
		now:   now,
		log:   log,
	}
}

// Borrow creates an active loan for the holder and marks the item borrowed.
// The availability flip is a single conditional update, so two concurrent
// borrows of the same item cannot both succeed.
func (s *service) Borrow(ctx context.Context, holderID, itemID uuid.UUID) (*LoanDetail, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.Availability != AvailabilityAvailable {
		return nil, ErrItemUnavailable
	}

	reserved, err := s.items.Reserve(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve item: %w", err)
	}
	if !reserved {
		return nil, ErrItemUnavailable
	}

	// Compensation for a failed borrow after the reservation succeeded.
	release := func() {
		if _, err := s.items.SetAvailability(ctx, itemID, AvailabilityAvailable); err != nil {
			s.log.Error("failed to release reservation", "item_id", itemID, "error", err)
		}
	}

	// A stale active loan means the availability flag desynchronized at some
	// point; refuse to stack a second loan on the item.
	active, err := s.loans.FindActiveByItem(ctx, itemID)
	if err != nil {
		release()
		return nil, fmt.Errorf("failed to check active loan: %w", err)
	}
	if active != nil {
		release()
		return nil, ErrItemUnavailable
	}

	today := dateOf(s.now())
	loan := &Loan{
		ID:       uuid.New(),
		ItemID:   itemID,
		HolderID: holderID,
		LoanDate: today,
		DueDate:  today.AddDate(0, 0, LoanPeriodDays),
		Status:   LoanStatusActive,
	}
	if err := s.loans.Insert(ctx, loan); err != nil {
		release()
		return nil, fmt.Errorf("failed to insert loan: %w", err)
	}

	detail, err := s.loans.FindByID(ctx, loan.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created loan: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("created loan %s missing from ledger", loan.ID)
	}

	s.log.Info("item borrowed", "loan_id", loan.ID, "item_id", itemID, "holder_id", holderID, "due_date", loan.DueDate)
	return detail, nil
}

// Return closes an active loan held by holderID and makes the item available
// again. The ledger update is conditional on the loan still being active; if
// it reports no change the availability flag is left untouched.
func (s *service) Return(ctx context.Context, loanID, holderID uuid.UUID) error {
	loan, err := s.loans.FindByID(ctx, loanID)
	if err != nil {
		return fmt.Errorf("failed to get loan: %w", err)
	}
	if loan == nil {
		return ErrLoanNotFound
	}
	if loan.HolderID != holderID {
		return ErrNotOwner
	}
	if loan.Status != LoanStatusActive {
		return ErrAlreadyReturned
	}

	changed, err := s.loans.MarkReturned(ctx, loanID, dateOf(s.now()))
	if err != nil {
		return fmt.Errorf("failed to close loan: %w", err)
	}
	if changed == 0 {
		// Lost a race with another return of the same loan.
		return ErrAlreadyReturned
	}

	if _, err := s.items.SetAvailability(ctx, loan.ItemID, AvailabilityAvailable); err != nil {
		return fmt.Errorf("failed to release item: %w", err)
	}

	s.log.Info("item returned", "loan_id", loanID, "item_id", loan.ItemID, "holder_id", holderID)
	return nil
}

// GetLoan retrieves one loan with its display fields.
func (s *service) GetLoan(ctx context.Context, id uuid.UUID) (*LoanDetail, error) {
	loan, err := s.loans.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}
	return loan, nil
}

// ListHolderLoans lists every loan, past and present, for one holder.
func (s *service) ListHolderLoans(ctx context.Context, holderID uuid.UUID) ([]LoanDetail, error) {
	loans, err := s.loans.FindByHolder(ctx, holderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holder loans: %w", err)
	}
	return loans, nil
}

// ListAllLoans lists every loan in the ledger.
func (s *service) ListAllLoans(ctx context.Context) ([]LoanDetail, error) {
	loans, err := s.loans.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

// DashboardStats composes the summary counts with the most-borrowed ranking.
func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats, err := s.loans.AggregateCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate counts: %w", err)
	}

	top, err := s.loans.TopBorrowed(ctx, topBorrowedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank borrowed items: %w", err)
	}
	stats.TopBorrowed = top

	return stats, nil
}

// dateOf truncates a timestamp to its UTC calendar date. Loan, due and
// return dates carry no time-of-day component.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
