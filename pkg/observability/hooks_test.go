package observability

import (
	"context"
	"testing"
	"time"
)

type recordingEngineHooks struct {
	computes int
	drags    int
}

func (h *recordingEngineHooks) OnComputeStart(context.Context, int) {}
func (h *recordingEngineHooks) OnComputeComplete(context.Context, int, int, time.Duration) {
	h.computes++
}
func (h *recordingEngineHooks) OnDrag(context.Context, string, int) { h.drags++ }

type recordingCacheHooks struct {
	hits, misses, sets int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *recordingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic
	ctx := context.Background()
	Engine().OnComputeStart(ctx, 5)
	Engine().OnComputeComplete(ctx, 5, 3, time.Millisecond)
	Engine().OnDrag(ctx, "b", 2)
	Cache().OnCacheHit(ctx, "schedule")
	Cache().OnCacheMiss(ctx, "schedule")
	Cache().OnCacheSet(ctx, "schedule", 128)
}

func TestSetEngineHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingEngineHooks{}
	SetEngineHooks(rec)

	ctx := context.Background()
	Engine().OnComputeComplete(ctx, 5, 3, time.Millisecond)
	Engine().OnDrag(ctx, "b", 2)

	if rec.computes != 1 || rec.drags != 1 {
		t.Errorf("recorded computes=%d drags=%d, want 1/1", rec.computes, rec.drags)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	ctx := context.Background()
	Cache().OnCacheMiss(ctx, "schedule")
	Cache().OnCacheSet(ctx, "schedule", 64)
	Cache().OnCacheHit(ctx, "schedule")

	if rec.hits != 1 || rec.misses != 1 || rec.sets != 1 {
		t.Errorf("recorded hits=%d misses=%d sets=%d, want 1/1/1", rec.hits, rec.misses, rec.sets)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	SetCacheHooks(nil)

	Cache().OnCacheHit(context.Background(), "schedule")
	if rec.hits != 1 {
		t.Error("nil registration should not replace existing hooks")
	}
}
