package syncx

import (
	"context"
	"testing"
	"time"
)

func TestGroupStopCancelsAndWaits(t *testing.T) {
	t.Parallel()

	g := NewGroup(nil)

	done := make(chan struct{})
	g.Go(func(ctx context.Context) {
		<-ctx.Done()
		close(done)
	})

	g.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("expected goroutine to exit after Stop")
	}
}

func TestGroupWait(t *testing.T) {
	t.Parallel()

	g := NewGroup(context.Background())

	ch := make(chan struct{})
	g.Go(func(ctx context.Context) { close(ch) })

	g.Wait()
	select {
	case <-ch:
	default:
		t.Fatalf("expected goroutine to finish before Wait returns")
	}
}

func TestRunIntervalStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan struct{}, 8)

	done := make(chan struct{})
	go func() {
		RunInterval(ctx, 10*time.Millisecond, true, func(ctx context.Context) {
			select {
			case ticks <- struct{}{}:
			default:
			}
		})
		close(done)
	}()

	select {
	case <-ticks:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("expected an immediate tick")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("expected RunInterval to return after cancel")
	}
}
