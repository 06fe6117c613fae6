package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("Computing cluster layout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	// A plain Stop is not a cancellation; Cancelled must stay callable
	// afterwards either way.
	_ = s.Cancelled()
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Rendering hierarchy...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancelled after context cancel")
	}
}

func TestSpinnerContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Saving schedules...")
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Importing snapshot...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinner("Computing...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Layout complete")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("Computing...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Layout failed")
}
