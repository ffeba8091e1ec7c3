package chain

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/nisaacdz/blockify/internal/logging"
	"github.com/nisaacdz/blockify/internal/telemetry"
	"github.com/nisaacdz/blockify/pkg/block"
	"github.com/nisaacdz/blockify/pkg/record"
)

// Memory is an in-memory Chain backend: every block lives in a slice
// held for the process's lifetime. It is the reference backend for
// tests and for callers who don't need durability across restarts.
type Memory[T record.Payload[T]] struct {
	mu      sync.Mutex
	blocks  []block.Block[T]
	last    *block.ChainedInstance
	codec   record.Codec[T]
	logger  zerolog.Logger
	metrics *telemetry.ChainMetrics
	clock   func() int64

	appending atomic.Bool
}

// Option configures a Memory at construction time. pkg/chain/sqlite
// defines its own Option type for sqlite.Chain.
type Option[T record.Payload[T]] func(*Memory[T])

// WithLogger attaches a logger; the default is a disabled (silent) one.
func WithLogger[T record.Payload[T]](logger zerolog.Logger) Option[T] {
	return func(m *Memory[T]) { m.logger = logger }
}

// WithMetrics attaches a metrics collaborator; nil is safe and is the
// default.
func WithMetrics[T record.Payload[T]](metrics *telemetry.ChainMetrics) Option[T] {
	return func(m *Memory[T]) { m.metrics = metrics }
}

// WithClock overrides the function used to stamp each sealed block's
// timestamp; tests use this to get deterministic, monotonically
// increasing values instead of wall-clock time.
func WithClock[T record.Payload[T]](clock func() int64) Option[T] {
	return func(m *Memory[T]) { m.clock = clock }
}

// NewMemory returns an empty Memory chain that will encode/decode
// records with codecT.
func NewMemory[T record.Payload[T]](codecT record.Codec[T], opts ...Option[T]) *Memory[T] {
	m := &Memory[T]{
		codec:  codecT,
		logger: logging.Disabled(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = defaultClock
	}
	return m
}

// Append seals u onto the chain. It takes the chain's mutex for the
// duration of the call; a re-entrant Append from another goroutine
// fails immediately with ErrConcurrentAppend rather than blocking,
// since concurrent multi-writer access is explicitly out of scope.
func (m *Memory[T]) Append(ctx context.Context, u *block.UnchainedInstance[T]) (block.ChainedInstance, error) {
	if !m.appending.CompareAndSwap(false, true) {
		return block.ChainedInstance{}, ErrConcurrentAppend
	}
	defer m.appending.Store(false)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := VerifyRecords(u.Records()); err != nil {
		m.metrics.ObserveAppendError()
		return block.ChainedInstance{}, err
	}

	sealed, descriptor, err := block.Seal(u, m.last, m.clock(), m.codec)
	if err != nil {
		m.metrics.ObserveAppendError()
		return block.ChainedInstance{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	m.blocks = append(m.blocks, sealed)
	prev := descriptor
	m.last = &prev

	m.metrics.ObserveAppend(sealed.RecordCount(), uint64(len(m.blocks)))
	m.logger.Debug().Uint64("position", descriptor.Position).Str("hash", descriptor.Hash.String()).Msg("appended block")

	return descriptor, nil
}

// BlockAt returns the block at position, or ErrNotFound.
func (m *Memory[T]) BlockAt(ctx context.Context, position uint64) (*block.Block[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if position >= uint64(len(m.blocks)) {
		return nil, fmt.Errorf("%w: position %d", ErrNotFound, position)
	}
	b := m.blocks[position]
	return &b, nil
}

// Len returns the number of blocks on the chain.
func (m *Memory[T]) Len(ctx context.Context) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint64(len(m.blocks)), nil
}

// Close is a no-op for the in-memory backend.
func (m *Memory[T]) Close() error {
	return nil
}

func defaultClock() int64 {
	return nowUnix()
}
