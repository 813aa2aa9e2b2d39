package loops

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFuture_Wait(t *testing.T) {
	f := newFuture(func() (int, error) {
		return 42, nil
	})
	got, err := f.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Wait() = %d, want 42", got)
	}
}

func TestFuture_WaitRepeatable(t *testing.T) {
	f := newFuture(func() (string, error) {
		return "ok", nil
	})
	for i := 0; i < 3; i++ {
		got, err := f.Wait(context.Background())
		if err != nil || got != "ok" {
			t.Errorf("Wait() #%d = %q, %v", i, got, err)
		}
	}
}

func TestFuture_Error(t *testing.T) {
	cause := errors.New("boom")
	f := newFuture(func() (int, error) {
		return 0, cause
	})
	_, err := f.Wait(context.Background())
	if !errors.Is(err, cause) {
		t.Errorf("Wait() error = %v, want %v", err, cause)
	}
}

func TestFuture_WaitContextCancelled(t *testing.T) {
	block := make(chan struct{})
	f := newFuture(func() (int, error) {
		<-block
		return 1, nil
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestFuture_CancelledWaitDoesNotLoseResult(t *testing.T) {
	block := make(chan struct{})
	f := newFuture(func() (int, error) {
		<-block
		return 7, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Wait(ctx); err == nil {
		t.Fatal("Wait() with cancelled ctx returned nil error")
	}

	close(block)
	got, err := f.Wait(context.Background())
	if err != nil || got != 7 {
		t.Errorf("second Wait() = %d, %v, want 7, nil", got, err)
	}
}

func TestResolvedFuture(t *testing.T) {
	f := resolvedFuture("done", nil)
	select {
	case <-f.Done():
	default:
		t.Fatal("resolved future is not done")
	}
	got, err := f.Wait(context.Background())
	if err != nil || got != "done" {
		t.Errorf("Wait() = %q, %v", got, err)
	}
}
