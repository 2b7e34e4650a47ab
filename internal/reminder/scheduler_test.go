// internal/reminder/scheduler_test.go
package reminder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubService counts cycles; the remaining Service methods are unused by
// the scheduler.
type stubService struct {
	cycles   atomic.Int64
	cycleErr error
}

func (s *stubService) TriggerCycle(context.Context) ([]Candidate, error) {
	s.cycles.Add(1)
	if s.cycleErr != nil {
		return nil, s.cycleErr
	}
	return nil, nil
}

func (s *stubService) UpcomingDue(context.Context, int) ([]Candidate, error) { return nil, nil }
func (s *stubService) Overdue(context.Context) ([]Candidate, error)          { return nil, nil }
func (s *stubService) LogReminder(context.Context, uuid.UUID, string) error  { return nil }
func (s *stubService) History(context.Context, *uuid.UUID) ([]Record, error) { return nil, nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerRunsCyclesUntilCancelled(t *testing.T) {
	stub := &stubService{}
	s := NewScheduler(stub, 10*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(45 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}

	// One immediate cycle plus at least one tick.
	assert.GreaterOrEqual(t, stub.cycles.Load(), int64(2))
}

func TestSchedulerStopsPromptlyDuringSleep(t *testing.T) {
	stub := &stubService{}
	s := NewScheduler(stub, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// Give the immediate cycle a moment, then cancel mid-sleep.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler slept through cancellation")
	}
	assert.Equal(t, int64(1), stub.cycles.Load())
}

func TestSchedulerSurvivesFailingCycles(t *testing.T) {
	stub := &stubService{cycleErr: errors.New("storage down")}
	s := NewScheduler(stub, 10*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(45 * time.Millisecond)
	cancel()
	<-done

	// Failed cycles are reported and skipped; the loop keeps ticking.
	assert.GreaterOrEqual(t, stub.cycles.Load(), int64(2))
}

func TestSchedulerDefaultsInterval(t *testing.T) {
	s := NewScheduler(&stubService{}, 0, discardLogger())
	assert.Equal(t, DefaultInterval, s.interval)
}
