// internal/reminder/classifier.go
package reminder

import (
	"sort"
	"time"

	"bibliotheca/internal/lending"
)

// UpcomingDue partitions the given active loans into those due within
// windowDays of now, annotated with the whole-day distance to the due date.
// Loans due today or earlier are excluded. Results are ordered by ascending
// due date.
func UpcomingDue(loans []lending.LoanDetail, now time.Time, windowDays int) []Candidate {
	var out []Candidate
	for _, l := range loans {
		if l.Status != lending.LoanStatusActive {
			continue
		}
		days := daysBetween(now, l.DueDate)
		if days <= 0 || days > windowDays {
			continue
		}
		out = append(out, candidateOf(l, days, 0))
	}
	sortByDueDate(out)
	return out
}

// Overdue returns the active loans whose due date has passed, annotated with
// how many whole days they are overdue. Results are ordered by ascending
// due date.
func Overdue(loans []lending.LoanDetail, now time.Time) []Candidate {
	var out []Candidate
	for _, l := range loans {
		if l.Status != lending.LoanStatusActive {
			continue
		}
		days := daysBetween(l.DueDate, now)
		if days <= 0 {
			continue
		}
		out = append(out, candidateOf(l, 0, days))
	}
	sortByDueDate(out)
	return out
}

func candidateOf(l lending.LoanDetail, untilDue, overdue int) Candidate {
	return Candidate{
		LoanID:       l.ID,
		HolderID:     l.HolderID,
		HolderName:   l.HolderName,
		ItemTitle:    l.ItemTitle,
		DueDate:      l.DueDate,
		DaysUntilDue: untilDue,
		DaysOverdue:  overdue,
	}
}

func sortByDueDate(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].DueDate.Before(cs[j].DueDate)
	})
}

// daysBetween counts whole calendar days from one date to the other,
// negative when to precedes from. Time-of-day is ignored.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.UTC().Date()
	ty, tm, td := to.UTC().Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
