package logqueue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/PencariData/search-service-api/pkg/log"
)

// Sink persists one log record type. Implemented per record type and passed
// by static dependency injection.
type Sink[T any] interface {
	Store(ctx context.Context, record T) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc[T any] func(ctx context.Context, record T) error

func (f SinkFunc[T]) Store(ctx context.Context, record T) error {
	return f(ctx, record)
}

const persistTimeout = 10 * time.Second

// Consumer drains one queue sequentially and persists each record through
// its sink. Exactly one consumer runs per record type, so the log store sees
// no concurrent writers from this path.
type Consumer[T any] struct {
	name  string
	queue *Queue[T]
	sink  Sink[T]
	done  chan struct{}
}

func NewConsumer[T any](name string, queue *Queue[T], sink Sink[T]) *Consumer[T] {
	return &Consumer[T]{
		name:  name,
		queue: queue,
		sink:  sink,
		done:  make(chan struct{}),
	}
}

// Run drains the queue until ctx is cancelled or the queue closes. A
// persistence failure for one record is logged and the loop moves on: no
// retry, no redelivery, no crash. A record already dequeued when shutdown
// arrives is still persisted before Run returns.
func (c *Consumer[T]) Run(ctx context.Context) {
	defer close(c.done)

	logger := log.L().With().Str("consumer", c.name).Logger()
	logger.Info().Msg("log consumer started")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("log consumer stopping")
			return
		case record, ok := <-c.queue.ch:
			if !ok {
				logger.Info().Msg("log queue closed")
				return
			}
			c.persist(record, logger)
		}
	}
}

// Done is closed when Run has returned.
func (c *Consumer[T]) Done() <-chan struct{} {
	return c.done
}

// persist runs on its own deadline, detached from request contexts, so a
// cancelled caller never aborts an in-flight store.
func (c *Consumer[T]) persist(record T, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := c.sink.Store(ctx, record); err != nil {
		logger.Error().Err(err).Msg("failed to persist log record, dropping")
	}
}
