package domain

import (
	"context"
	"iter"
)

// Encryptor protects personal fields before they are stored
type Encryptor interface {
	Encrypt(plain string) (string, error)
	Decrypt(enc string) (string, error)
}

// Repository is the durable, authoritative store
type Repository interface {
	Upsert(ctx context.Context, e Event, encryptedIP string) error
	All(ctx context.Context) ([]Record, error)
	Ping(ctx context.Context) error
}

// FastStore is the in-memory read model
type FastStore interface {
	Upsert(ctx context.Context, r FastRecord) error
	All(ctx context.Context) ([]FastRecord, error)
	ByClient(ctx context.Context, clientID string) ([]FastRecord, error)
}

// Tracker folds a score into the per-client NPS accumulator
type Tracker interface {
	Track(clientID string, score int)
}

// Processor runs the persistence steps for one event
type Processor interface {
	Process(ctx context.Context, e Event) error
}

// ProcessorFactory returns a fresh Processor per item
type ProcessorFactory func() Processor

// Enqueuer accepts events for asynchronous processing
type Enqueuer interface {
	Enqueue(ctx context.Context, e Event) error
}

// Queue is the buffer between submission and the worker
type Queue interface {
	Enqueuer
	Requeue(ctx context.Context, item QueueItem) error
	Drain(ctx context.Context) iter.Seq[QueueItem]
}

// MetricsReader exposes the NPS snapshot
type MetricsReader interface {
	Snapshot() []ClientNps
}

// InsightsReader exposes the latest insights snapshot
type InsightsReader interface {
	Latest() []ClientInsights
}

// HealthReporter produces a point in time health report
type HealthReporter interface {
	Report(ctx context.Context) HealthReport
}
