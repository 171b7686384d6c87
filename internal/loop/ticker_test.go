package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestStepGating(t *testing.T) {
	tk := NewTicker(30)
	calls := 0
	tk.SetDraw(func() { calls++ })

	if !tk.Step() {
		t.Fatal("expected draw while looping")
	}

	tk.NoLoop()
	if tk.Step() {
		t.Error("draw called while not looping")
	}

	tk.Loop()
	tk.Step()

	if calls != 2 || tk.Frames() != 2 {
		t.Errorf("calls=%d frames=%d, want 2 and 2", calls, tk.Frames())
	}
}

func TestStepWithoutDraw(t *testing.T) {
	tk := NewTicker(0)
	if tk.Step() {
		t.Error("Step without draw func reported a frame")
	}
	if tk.FPS() != DefaultFPS {
		t.Errorf("FPS = %d, want %d", tk.FPS(), DefaultFPS)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	tk := NewTicker(200)
	frames := make(chan struct{}, 1000)
	tk.SetDraw(func() { frames <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tk.Run(ctx) }()

	select {
	case <-frames:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame drawn")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestPostRunsOnLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	tk := NewTicker(100)
	tk.NoLoop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- tk.Run(ctx) }()

	ran := make(chan bool, 1)
	tk.Post(func() {
		tk.Loop()
		ran <- tk.Looping()
	})

	select {
	case looping := <-ran:
		if !looping {
			t.Error("posted event did not run on loop state")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("posted event never ran")
	}

	cancel()
	<-done
}
