// internal/reminder/handler_test.go
package reminder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedService struct {
	upcoming    []Candidate
	overdue     []Candidate
	history     []Record
	triggered   []Candidate
	windowSeen  int
	historyLoan *uuid.UUID
	err         error
}

func (s *cannedService) UpcomingDue(_ context.Context, windowDays int) ([]Candidate, error) {
	s.windowSeen = windowDays
	return s.upcoming, s.err
}

func (s *cannedService) Overdue(context.Context) ([]Candidate, error) {
	return s.overdue, s.err
}

func (s *cannedService) LogReminder(context.Context, uuid.UUID, string) error {
	return s.err
}

func (s *cannedService) History(_ context.Context, loanID *uuid.UUID) ([]Record, error) {
	s.historyLoan = loanID
	return s.history, s.err
}

func (s *cannedService) TriggerCycle(context.Context) ([]Candidate, error) {
	return s.triggered, s.err
}

func newReminderRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	NewHandler(svc).Routes(r)
	return r
}

func TestHandleUpcomingDefaultsWindow(t *testing.T) {
	svc := &cannedService{upcoming: []Candidate{{LoanID: uuid.New(), DaysUntilDue: 12}}}
	router := newReminderRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reminders/upcoming", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultUpcomingWindow, svc.windowSeen)
}

func TestHandleUpcomingCustomWindow(t *testing.T) {
	svc := &cannedService{}
	router := newReminderRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reminders/upcoming?days=7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, svc.windowSeen)
}

func TestHandleUpcomingRejectsBadWindow(t *testing.T) {
	router := newReminderRouter(&cannedService{})

	for _, days := range []string{"zero", "-1", "0"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reminders/upcoming?days="+days, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "days=%s", days)
	}
}

func TestHandleHistoryScopedToLoan(t *testing.T) {
	svc := &cannedService{history: []Record{{ID: uuid.New(), Type: TypeOverdue}}}
	router := newReminderRouter(svc)

	loanID := uuid.New()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reminders/history?loan_id="+loanID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.historyLoan)
	assert.Equal(t, loanID, *svc.historyLoan)
}

func TestHandleHistoryRejectsBadLoanID(t *testing.T) {
	router := newReminderRouter(&cannedService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reminders/history?loan_id=nope", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTriggerReturnsLoggedCandidates(t *testing.T) {
	triggered := []Candidate{
		{LoanID: uuid.New(), DaysUntilDue: 29},
		{LoanID: uuid.New(), DaysOverdue: 3},
	}
	router := newReminderRouter(&cannedService{triggered: triggered})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reminders/trigger", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []Candidate
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, triggered[0].LoanID, got[0].LoanID)
}

func TestHandleOverdueStorageFault(t *testing.T) {
	router := newReminderRouter(&cannedService{err: assert.AnError})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reminders/overdue", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
