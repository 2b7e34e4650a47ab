// internal/reminder/classifier_test.go
package reminder

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"bibliotheca/internal/lending"
)

var classifierNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func activeLoanDueIn(days int) lending.LoanDetail {
	due := classifierNow.AddDate(0, 0, days)
	return lending.LoanDetail{
		Loan: lending.Loan{
			ID:       uuid.New(),
			ItemID:   uuid.New(),
			HolderID: uuid.New(),
			LoanDate: due.AddDate(0, 0, -lending.LoanPeriodDays),
			DueDate:  time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC),
			Status:   lending.LoanStatusActive,
		},
	}
}

func TestUpcomingDueWindows(t *testing.T) {
	tests := []struct {
		name       string
		dueInDays  int
		windowDays int
		want       bool
		wantDays   int
	}{
		{name: "due in 29 days inside 30-day window", dueInDays: 29, windowDays: 30, want: true, wantDays: 29},
		{name: "due in 29 days outside 5-day window", dueInDays: 29, windowDays: 5, want: false},
		{name: "due in 5 days inside 5-day window", dueInDays: 5, windowDays: 5, want: true, wantDays: 5},
		{name: "due exactly at window edge", dueInDays: 30, windowDays: 30, want: true, wantDays: 30},
		{name: "due just past window edge", dueInDays: 31, windowDays: 30, want: false},
		{name: "due today is not upcoming", dueInDays: 0, windowDays: 30, want: false},
		{name: "overdue loan is not upcoming", dueInDays: -1, windowDays: 30, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loans := []lending.LoanDetail{activeLoanDueIn(tt.dueInDays)}
			got := UpcomingDue(loans, classifierNow, tt.windowDays)
			if !tt.want {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantDays, got[0].DaysUntilDue)
			assert.Zero(t, got[0].DaysOverdue)
		})
	}
}

func TestOverdueClassification(t *testing.T) {
	loans := []lending.LoanDetail{
		activeLoanDueIn(-1),
		activeLoanDueIn(0),
		activeLoanDueIn(1),
		activeLoanDueIn(-14),
	}

	got := Overdue(loans, classifierNow)
	require.Len(t, got, 2)

	// Ascending due date: the most overdue loan comes first.
	assert.Equal(t, 14, got[0].DaysOverdue)
	assert.Equal(t, 1, got[1].DaysOverdue)
	for _, c := range got {
		assert.Zero(t, c.DaysUntilDue)
	}
}

func TestClassifierIgnoresReturnedLoans(t *testing.T) {
	returned := activeLoanDueIn(-3)
	returned.Status = lending.LoanStatusReturned

	assert.Empty(t, Overdue([]lending.LoanDetail{returned}, classifierNow))
	upcoming := activeLoanDueIn(10)
	upcoming.Status = lending.LoanStatusReturned
	assert.Empty(t, UpcomingDue([]lending.LoanDetail{upcoming}, classifierNow, 30))
}

func TestUpcomingDueOrderedByDueDate(t *testing.T) {
	loans := []lending.LoanDetail{
		activeLoanDueIn(20),
		activeLoanDueIn(3),
		activeLoanDueIn(11),
	}

	got := UpcomingDue(loans, classifierNow, 30)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].DaysUntilDue)
	assert.Equal(t, 11, got[1].DaysUntilDue)
	assert.Equal(t, 20, got[2].DaysUntilDue)
}

func TestDayDifferenceIgnoresTimeOfDay(t *testing.T) {
	// Due tomorrow at 00:00, observed today at 23:59: still one whole day.
	loan := activeLoanDueIn(1)
	lateEvening := time.Date(2026, 6, 1, 23, 59, 0, 0, time.UTC)

	got := UpcomingDue([]lending.LoanDetail{loan}, lateEvening, 30)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].DaysUntilDue)
}

func TestClassifierPartitionsEveryLoan(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offset := rapid.IntRange(-100, 100).Draw(t, "dueOffsetDays")
		loan := activeLoanDueIn(offset)
		loans := []lending.LoanDetail{loan}

		upcoming := UpcomingDue(loans, classifierNow, 30)
		overdue := Overdue(loans, classifierNow)

		if len(upcoming) > 0 && len(overdue) > 0 {
			t.Fatalf("loan due in %d days classified both upcoming and overdue", offset)
		}

		switch {
		case offset > 0 && offset <= 30:
			if len(upcoming) != 1 || upcoming[0].DaysUntilDue != offset {
				t.Fatalf("loan due in %d days: upcoming=%v", offset, upcoming)
			}
		case offset < 0:
			if len(overdue) != 1 || overdue[0].DaysOverdue != -offset {
				t.Fatalf("loan overdue by %d days: overdue=%v", -offset, overdue)
			}
		default:
			// Due today or beyond the window: in neither set.
			if len(upcoming) != 0 || len(overdue) != 0 {
				t.Fatalf("loan due in %d days unexpectedly classified", offset)
			}
		}
	})
}

func TestDueSoonBucketsNeverOverlap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offset := rapid.IntRange(0, 40).Draw(t, "dueOffsetDays")
		loans := []lending.LoanDetail{activeLoanDueIn(offset)}

		in30Band := 0
		for _, c := range UpcomingDue(loans, classifierNow, 30) {
			if c.DaysUntilDue >= 28 && c.DaysUntilDue <= 30 {
				in30Band++
			}
		}
		in5Band := 0
		for _, c := range UpcomingDue(loans, classifierNow, 5) {
			if c.DaysUntilDue >= 3 && c.DaysUntilDue <= 5 {
				in5Band++
			}
		}

		if in30Band > 0 && in5Band > 0 {
			t.Fatalf("loan due in %d days matched both due-soon bands", offset)
		}
	})
}
