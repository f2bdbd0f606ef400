package shardqueue

import "time"

// Config tunes a ShardExecutor. Zero values are replaced with defaults in
// NewShardExecutor.
type Config struct {
	// Shards is the number of worker goroutines / queues.
	Shards int

	// QueueSize is the capacity of each shard's queue.
	QueueSize int

	// EnqueueTimeout bounds how long Submit blocks on a full shard before
	// returning a QueueFullError.
	EnqueueTimeout time.Duration

	// MaxAttempts caps how many times a recoverable job is run. 1 disables
	// retries entirely.
	MaxAttempts int

	// BaseBackoff is the initial retry interval.
	BaseBackoff time.Duration

	// MaxInterval caps the retry interval growth.
	MaxInterval time.Duration

	// ErrorHandler, when set, receives every terminal job error. It must
	// not block.
	ErrorHandler func(error)
}
