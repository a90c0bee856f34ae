package tui

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLoadState_BeginCancelsPrevious(t *testing.T) {
	state := &LoadState{}

	first, gen1 := state.Begin(context.Background())
	second, gen2 := state.Begin(context.Background())

	if gen2 <= gen1 {
		t.Errorf("generation did not advance: %d then %d", gen1, gen2)
	}

	select {
	case <-first.Done():
		// Expected
	case <-time.After(100 * time.Millisecond):
		t.Error("First load context was not cancelled")
	}

	if second.Err() != nil {
		t.Error("Latest load context should still be live")
	}
}

func TestLoadState_FinishOnlyCurrent(t *testing.T) {
	state := &LoadState{}

	_, old := state.Begin(context.Background())
	ctx, cur := state.Begin(context.Background())

	if state.Finish(old) {
		t.Error("Finish should reject a stale generation")
	}
	if !state.Finish(cur) {
		t.Error("Finish should accept the current generation")
	}
	if ctx.Err() == nil {
		t.Error("Finish should release the context")
	}
}

func TestLoadState_CancelMakesRunningLoadStale(t *testing.T) {
	state := &LoadState{}
	ctx, gen := state.Begin(context.Background())

	state.Cancel()

	if ctx.Err() == nil {
		t.Error("Cancel should cancel the running load")
	}
	if state.Finish(gen) {
		t.Error("Finish should reject the cancelled generation")
	}
}

func TestLoadState_CancelIdempotent(t *testing.T) {
	state := &LoadState{}

	// Cancel with nothing running should not panic
	state.Cancel()
	state.Cancel()

	_, gen := state.Begin(context.Background())
	if !state.Finish(gen) {
		t.Error("a load begun after Cancel should be current")
	}
}

func TestLoadState_ConcurrentAccess(t *testing.T) {
	state := &LoadState{}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			_, gen := state.Begin(context.Background())
			state.Finish(gen)
		}()

		go func(iteration int) {
			defer wg.Done()
			if iteration%2 == 0 {
				state.Cancel()
			} else {
				_ = state.Finish(uint64(iteration))
			}
		}(i)
	}

	wg.Wait()
	// If test completes without panic or data race, success
}
