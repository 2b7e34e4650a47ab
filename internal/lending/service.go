// internal/lending/service.go
package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines the interface for the lending service.
type Service interface {
	Borrow(ctx context.Context, holderID, itemID uuid.UUID) (*LoanDetail, error)
	Return(ctx context.Context, loanID, holderID uuid.UUID) error
	GetLoan(ctx context.Context, id uuid.UUID) (*LoanDetail, error)
	ListHolderLoans(ctx context.Context, holderID uuid.UUID) ([]LoanDetail, error)
	ListAllLoans(ctx context.Context) ([]LoanDetail, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// ItemStore is the catalog collaborator the lifecycle engine consults.
// Reserve must be atomic: it flips an available item to borrowed and reports
// whether this caller won the flip.
type ItemStore interface {
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	Reserve(ctx context.Context, id uuid.UUID) (bool, error)
	SetAvailability(ctx context.Context, id uuid.UUID, availability string) (int64, error)
}

// LoanStore persists loans and serves the joined read projections.
// Find methods return nil without error when no row matches.
type LoanStore interface {
	Insert(ctx context.Context, loan *Loan) error
	MarkReturned(ctx context.Context, loanID uuid.UUID, returnDate time.Time) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LoanDetail, error)
	FindActiveByItem(ctx context.Context, itemID uuid.UUID) (*Loan, error)
	FindByHolder(ctx context.Context, holderID uuid.UUID) ([]LoanDetail, error)
	FindAll(ctx context.Context) ([]LoanDetail, error)
	AggregateCounts(ctx context.Context) (*DashboardStats, error)
	TopBorrowed(ctx context.Context, limit int) ([]BorrowCount, error)
}
