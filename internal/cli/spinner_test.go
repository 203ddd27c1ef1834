package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Checking isomorphism...")
	s.Start()
	s.Stop()
	s.Stop()
	if s.Cancelled() {
		t.Error("Stop() should not count as cancellation")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Checking isomorphism...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Checking isomorphism...")
	s.Start()
	<-ctx.Done()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Checking isomorphism...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal", buf.String())
	}
}

func TestSpinnerDraw(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Checking")

	s.draw("⠋", 200*time.Millisecond)
	if bytes.Contains(buf.Bytes(), []byte("0s")) {
		t.Errorf("draw() = %q, want no elapsed time before one second", buf.String())
	}
	buf.Reset()
	s.draw("⠙", 2500*time.Millisecond)
	if !bytes.Contains(buf.Bytes(), []byte("Checking 2s")) {
		t.Errorf("draw() = %q, want elapsed seconds", buf.String())
	}

	buf.Reset()
	s.clearLine()
	if buf.Len() == 0 {
		t.Error("clearLine() should blank the drawn line")
	}
}
