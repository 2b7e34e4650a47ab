// internal/lending/domain.go
package lending

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Item availability states. Only "available" items can be borrowed; the
// lifecycle engine is the sole writer of the available/borrowed transition.
const (
	AvailabilityAvailable        = "available"
	AvailabilityBorrowed         = "borrowed"
	AvailabilityReserved         = "reserved"
	AvailabilityOutOfCirculation = "out_of_circulation"
)

// Loan lifecycle states. A loan is created active and transitions exactly
// once to returned.
const (
	LoanStatusActive   = "active"
	LoanStatusReturned = "returned"
)

// LoanPeriodDays is the fixed lending period applied to every new loan.
const LoanPeriodDays = 30

// Expected business outcomes. Handlers map these to client-facing statuses;
// anything else is a storage fault.
var (
	ErrItemNotFound    = errors.New("item not found")
	ErrItemUnavailable = errors.New("item is not available")
	ErrLoanNotFound    = errors.New("loan not found")
	ErrNotOwner        = errors.New("loan belongs to another holder")
	ErrAlreadyReturned = errors.New("loan already returned")
)

// Item is a physical lendable unit tracked for availability.
type Item struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Author       string    `json:"author" db:"author"`
	Availability string    `json:"availability" db:"availability"`
}

// Loan records one holder borrowing one item for a bounded period.
type Loan struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	ItemID     uuid.UUID  `json:"item_id" db:"item_id"`
	HolderID   uuid.UUID  `json:"holder_id" db:"holder_id"`
	LoanDate   time.Time  `json:"loan_date" db:"loan_date"`
	DueDate    time.Time  `json:"due_date" db:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty" db:"return_date"`
	Status     string     `json:"status" db:"status"`
}

// LoanDetail is a Loan joined with display fields from the item and holder
// records. The fields are a read-time projection, not stored loan state.
type LoanDetail struct {
	Loan
	ItemTitle  string `json:"item_title" db:"item_title"`
	ItemAuthor string `json:"item_author" db:"item_author"`
	HolderName string `json:"holder_name" db:"holder_name"`
}

// BorrowCount is one entry of the most-borrowed ranking.
type BorrowCount struct {
	Title     string `json:"title" db:"title"`
	LoanCount int    `json:"loan_count" db:"loan_count"`
}

// DashboardStats is the derived summary shown on the dashboard.
type DashboardStats struct {
	TotalItems     int           `json:"total_items" db:"total_items"`
	AvailableItems int           `json:"available_items" db:"available_items"`
	ActiveLoans    int           `json:"active_loans" db:"active_loans"`
	OverdueLoans   int           `json:"overdue_loans" db:"overdue_loans"`
	HolderCount    int           `json:"holder_count" db:"holder_count"`
	TopBorrowed    []BorrowCount `json:"top_borrowed"`
}
