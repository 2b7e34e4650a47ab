// internal/reminder/domain.go
package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Reminder types recorded in the history ledger.
const (
	TypeDueSoon30 = "due_soon_30"
	TypeDueSoon5  = "due_soon_5"
	TypeOverdue   = "overdue"
)

// Candidate is an active loan annotated with its distance from the due date.
// Exactly one of DaysUntilDue and DaysOverdue is non-zero for any loan not
// due today.
type Candidate struct {
	LoanID       uuid.UUID `json:"loan_id"`
	HolderID     uuid.UUID `json:"holder_id"`
	HolderName   string    `json:"holder_name"`
	ItemTitle    string    `json:"item_title"`
	DueDate      time.Time `json:"due_date"`
	DaysUntilDue int       `json:"days_until_due"`
	DaysOverdue  int       `json:"days_overdue"`
}

// Record is one appended reminder-history row. Rows are never mutated or
// deleted, and nothing deduplicates repeated (loan, type) pairs.
type Record struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LoanID     uuid.UUID `json:"loan_id" db:"loan_id"`
	Type       string    `json:"reminder_type" db:"reminder_type"`
	SentAt     time.Time `json:"sent_at" db:"sent_at"`
	ItemTitle  string    `json:"item_title" db:"item_title"`
	HolderName string    `json:"holder_name" db:"holder_name"`
}
