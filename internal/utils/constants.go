package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

// HTTP Handler Timeouts
const (
	// DefaultRequestTimeout is the default timeout for HTTP requests
	DefaultRequestTimeout = 30 * time.Second

	// BatchWriteTimeout is the timeout for publishing sales batches to the queue
	BatchWriteTimeout = 10 * time.Second
)

// =============================================================================
// Batch Size Constants
// =============================================================================

const (
	// DefaultBatchSize is the default chunk size for bulk CSV loads
	DefaultBatchSize = 1000

	// MaxBatchSize is the maximum number of sales points accepted in a single
	// write request or loader chunk
	MaxBatchSize = 10000
)

// =============================================================================
// Queue Type Constants
// =============================================================================
// QueueType represents the type of message queue
type QueueType string

const (
	// QueueTypeNATS represents NATS JetStream queue (default)
	QueueTypeNATS QueueType = "nats"

	// QueueTypeRedis represents Redis Streams queue
	QueueTypeRedis QueueType = "redis"

	// QueueTypeKafka represents Apache Kafka queue
	QueueTypeKafka QueueType = "kafka"

	// QueueTypeMemory represents in-memory queue (for testing)
	QueueTypeMemory QueueType = "memory"
)
