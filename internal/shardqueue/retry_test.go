package shardqueue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/feedkit/feedkit-go/internal/errors"
)

func TestShardExecutor_RetriesRecoverable(t *testing.T) {
	t.Parallel()
	cfg := Config{Shards: 1, QueueSize: 10, MaxAttempts: 3, BaseBackoff: 5 * time.Millisecond}
	ex := NewShardExecutor(cfg)
	defer ex.Stop()

	var attempts int32
	job := JobFunc(func(ctx context.Context) error {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return errors.NewHTTPError(503, "", "create like")
		}
		return nil
	})

	if err := ex.Submit(context.Background(), "post:1", job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := ex.Barrier(context.Background(), "post:1"); err != nil {
		t.Fatalf("barrier: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestShardExecutor_IrrecoverableFailsFast(t *testing.T) {
	t.Parallel()

	errCh := make(chan error, 1)
	cfg := Config{
		Shards:       1,
		QueueSize:    10,
		MaxAttempts:  3,
		BaseBackoff:  5 * time.Millisecond,
		ErrorHandler: func(err error) { errCh <- err },
	}
	ex := NewShardExecutor(cfg)
	defer ex.Stop()

	var attempts int32
	job := JobFunc(func(ctx context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return errors.NewHTTPError(403, "", "delete like")
	})

	if err := ex.Submit(context.Background(), "post:1", job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := ex.Barrier(context.Background(), "post:1"); err != nil {
		t.Fatalf("barrier: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("irrecoverable error must not be retried, got %d attempts", got)
	}
	select {
	case err := <-errCh:
		if !errors.IsIrrecoverable(err) {
			t.Fatalf("handler got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("error handler never invoked")
	}
}

func TestShardExecutor_SingleAttemptDisablesRetry(t *testing.T) {
	t.Parallel()
	cfg := Config{Shards: 1, QueueSize: 10, MaxAttempts: 1, BaseBackoff: 5 * time.Millisecond}
	ex := NewShardExecutor(cfg)
	defer ex.Stop()

	var attempts int32
	job := JobFunc(func(ctx context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return errors.NewHTTPError(500, "", "create like")
	})

	if err := ex.Submit(context.Background(), "post:1", job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := ex.Barrier(context.Background(), "post:1"); err != nil {
		t.Fatalf("barrier: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestShardExecutor_ErrorHandlerPanicContained(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Shards:       1,
		QueueSize:    10,
		MaxAttempts:  1,
		ErrorHandler: func(error) { panic("handler bug") },
	}
	ex := NewShardExecutor(cfg)
	defer ex.Stop()

	_ = ex.Submit(context.Background(), "post:1", JobFunc(func(context.Context) error {
		return errors.NewHTTPError(500, "", "create like")
	}))

	// The shard must survive the handler panic and keep running jobs.
	if err := ex.Barrier(context.Background(), "post:1"); err != nil {
		t.Fatalf("barrier after handler panic: %v", err)
	}
}
