package task

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitDone(t *testing.T, j *Job) {
	t.Helper()
	select {
	case <-j.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("job %s did not complete", j.Name())
	}
}

func TestRun_CompletesAndInvokesHandlers(t *testing.T) {
	r := NewRunner(context.Background())
	release := make(chan struct{})
	j := r.Run("work", func(ctx context.Context) error {
		<-release
		return nil
	})

	calls := 0
	j.InvokeOnCompletion(func(*Job) { calls++ })
	close(release)
	waitDone(t, j)

	if !j.IsCompleted() {
		t.Error("IsCompleted() = false after Done, want true")
	}
	if j.IsCancelled() {
		t.Error("IsCancelled() = true, want false")
	}
	if calls != 1 {
		t.Errorf("completion handler calls = %d, want 1", calls)
	}
}

func TestInvokeOnCompletion_AfterCompletionRunsImmediately(t *testing.T) {
	r := NewRunner(nil)
	j := r.Run("quick", func(ctx context.Context) error { return nil })
	waitDone(t, j)

	ran := false
	j.InvokeOnCompletion(func(*Job) { ran = true })
	if !ran {
		t.Error("handler registered after completion did not run")
	}
}

func TestCancel_StopsCooperativeWork(t *testing.T) {
	r := NewRunner(context.Background())
	started := make(chan struct{})
	j := r.Run("blocking", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started
	j.Cancel()
	waitDone(t, j)

	if !j.IsCancelled() {
		t.Error("IsCancelled() = false after Cancel, want true")
	}
	if !errors.Is(j.Err(), context.Canceled) {
		t.Errorf("Err() = %v, want context.Canceled", j.Err())
	}
}

func TestCancel_CompletedJobIsNoOp(t *testing.T) {
	r := NewRunner(context.Background())
	j := r.Run("done", func(ctx context.Context) error { return nil })
	waitDone(t, j)

	j.Cancel()
	if j.IsCancelled() {
		t.Error("cancelling a completed job marked it cancelled")
	}
}

func TestRun_RecoversPanic(t *testing.T) {
	r := NewRunner(context.Background())
	j := r.Run("panics", func(ctx context.Context) error {
		panic("boom")
	})
	waitDone(t, j)

	if j.Err() == nil {
		t.Error("Err() = nil after panic, want an error")
	}
}

func TestRunner_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(ctx)
	j := r.Run("child", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	cancel()
	waitDone(t, j)

	if !errors.Is(j.Err(), context.Canceled) {
		t.Errorf("Err() = %v, want context.Canceled", j.Err())
	}
}

func TestRunner_WaitBlocksUntilJobsComplete(t *testing.T) {
	r := NewRunner(context.Background())
	release := make(chan struct{})
	var jobs []*Job
	for i := 0; i < 3; i++ {
		jobs = append(jobs, r.Run("wait", func(ctx context.Context) error {
			<-release
			return nil
		}))
	}
	close(release)
	r.Wait()

	for i, j := range jobs {
		if !j.IsCompleted() {
			t.Errorf("job %d not completed after Wait()", i)
		}
	}
}

func TestDispatcher_DrainRunsInOrder(t *testing.T) {
	d := NewDispatcher()
	var got []int
	d.Post(func() { got = append(got, 1) })
	d.Post(func() {
		got = append(got, 2)
		d.Post(func() { got = append(got, 3) })
	})
	d.Post(nil)

	if n := d.Drain(); n != 2 {
		t.Errorf("first Drain() = %d, want 2", n)
	}
	if d.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1 (posted during drain)", d.Pending())
	}
	d.Drain()

	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
