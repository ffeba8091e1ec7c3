// Package sqlite implements the persistent, embedded-relational-store
// chain backend: a pure-Go (no cgo) SQLite file holding one row per
// block header and one row per record, written atomically per append.
// Import this package only when durability across process restarts is
// required; everything else in blockify works without a SQL driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"

	"github.com/nisaacdz/blockify/internal/logging"
	"github.com/nisaacdz/blockify/internal/telemetry"
	"github.com/nisaacdz/blockify/pkg/block"
	"github.com/nisaacdz/blockify/pkg/blockcrypto"
	"github.com/nisaacdz/blockify/pkg/chain"
	"github.com/nisaacdz/blockify/pkg/codec"
	"github.com/nisaacdz/blockify/pkg/digest"
	"github.com/nisaacdz/blockify/pkg/record"
)

// Config configures a Chain's underlying SQLite file.
type Config struct {
	// Path is the database file path. NewChain creates the containing
	// directory and the file itself if either is absent.
	Path string
	// MaxConnections bounds the connection pool.
	MaxConnections int
	// BusyTimeout is how long a write waits on a lock before giving up.
	BusyTimeout time.Duration
	// CacheSizeKB sets SQLite's page cache size, in kilobytes.
	CacheSizeKB int
	// JournalMode is typically "WAL" for concurrent readers or
	// "DELETE" for the simplest, most portable on-disk format.
	JournalMode string
	// SynchronousMode trades durability for write latency: "FULL",
	// "NORMAL", or "OFF".
	SynchronousMode string
}

// DefaultConfig returns production-sane defaults for path.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:            path,
		MaxConnections:  1,
		BusyTimeout:     5 * time.Second,
		CacheSizeKB:     10_000,
		JournalMode:     "WAL",
		SynchronousMode: "NORMAL",
	}
}

// Chain is the persistent Chain[T] backend.
type Chain[T record.Payload[T]] struct {
	db      *sql.DB
	codec   record.Codec[T]
	logger  zerolog.Logger
	metrics *telemetry.ChainMetrics
	clock   func() int64

	appending atomic.Bool
}

// Option configures a Chain at construction time.
type Option[T record.Payload[T]] func(*Chain[T])

// WithLogger attaches a logger; the default is a disabled (silent) one.
func WithLogger[T record.Payload[T]](logger zerolog.Logger) Option[T] {
	return func(c *Chain[T]) { c.logger = logger }
}

// WithMetrics attaches a metrics collaborator; nil is safe and default.
func WithMetrics[T record.Payload[T]](metrics *telemetry.ChainMetrics) Option[T] {
	return func(c *Chain[T]) { c.metrics = metrics }
}

// WithClock overrides the function used to stamp each sealed block's
// timestamp, for deterministic tests.
func WithClock[T record.Payload[T]](clock func() int64) Option[T] {
	return func(c *Chain[T]) { c.clock = clock }
}

// NewChain opens (creating if absent) the SQLite file at config.Path,
// applies the configured pragmas, and ensures the schema exists.
func NewChain[T record.Payload[T]](ctx context.Context, config *Config, codecT record.Codec[T], opts ...Option[T]) (*Chain[T], error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is required", chain.ErrStorageError)
	}
	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create chain directory: %v", chain.ErrStorageError, err)
		}
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", chain.ErrStorageError, err)
	}

	maxConns := config.MaxConnections
	if maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(time.Hour)

	if err := configurePragmas(db, config); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: configure pragmas: %v", chain.ErrStorageError, err)
	}

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", chain.ErrStorageError, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping: %v", chain.ErrStorageError, err)
	}

	c := &Chain[T]{
		db:     db,
		codec:  codecT,
		logger: logging.Disabled(),
		clock:  func() int64 { return time.Now().Unix() },
	}
	for _, opt := range opts {
		opt(c)
	}

	if length, err := c.Len(ctx); err == nil {
		c.metrics.SetLength(length)
	}

	return c, nil
}

func configurePragmas(db *sql.DB, config *Config) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", int(config.BusyTimeout.Milliseconds())),
		fmt.Sprintf("PRAGMA cache_size = -%d", config.CacheSizeKB),
		fmt.Sprintf("PRAGMA journal_mode = %s", config.JournalMode),
		fmt.Sprintf("PRAGMA synchronous = %s", config.SynchronousMode),
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

// Append seals u and writes its header and records in a single
// transaction, so a crash mid-write leaves either the fully-committed
// previous state or the fully-committed new block, never a torn block.
func (c *Chain[T]) Append(ctx context.Context, u *block.UnchainedInstance[T]) (block.ChainedInstance, error) {
	if !c.appending.CompareAndSwap(false, true) {
		return block.ChainedInstance{}, chain.ErrConcurrentAppend
	}
	defer c.appending.Store(false)

	prev, err := c.lastDescriptor(ctx)
	if err != nil {
		c.metrics.ObserveAppendError()
		return block.ChainedInstance{}, err
	}

	if err := chain.VerifyRecords(u.Records()); err != nil {
		c.metrics.ObserveAppendError()
		return block.ChainedInstance{}, err
	}

	sealed, descriptor, err := block.Seal(u, prev, c.clock(), c.codec)
	if err != nil {
		c.metrics.ObserveAppendError()
		return block.ChainedInstance{}, fmt.Errorf("%w: %v", chain.ErrInvalidRecord, err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		c.metrics.ObserveAppendError()
		return block.ChainedInstance{}, fmt.Errorf("%w: begin tx: %v", chain.ErrStorageError, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO blocks (position, hash, prev_hash, merkle_root, nonce, timestamp, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		descriptor.Position, descriptor.Hash.Bytes(), descriptor.PrevHash.Bytes(), descriptor.MerkleRoot.Bytes(),
		descriptor.Nonce, sealed.Timestamp(), metadataBytes(sealed.Metadata()),
	)
	if err != nil {
		c.metrics.ObserveAppendError()
		return block.ChainedInstance{}, fmt.Errorf("%w: insert block: %v", chain.ErrStorageError, err)
	}

	recs := u.Records()
	for seq, r := range recs {
		payloadBytes, err := c.codec.Marshal(r.Payload())
		if err != nil {
			c.metrics.ObserveAppendError()
			return block.ChainedInstance{}, fmt.Errorf("%w: %v", chain.ErrInvalidRecord, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO records (block_position, seq, payload, hash, signer, signature, metadata) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			descriptor.Position, seq, payloadBytes, r.Hash().Bytes(), []byte(r.PublicKey()), []byte(r.Signature()), metadataBytes(r.Metadata()),
		)
		if err != nil {
			c.metrics.ObserveAppendError()
			return block.ChainedInstance{}, fmt.Errorf("%w: insert record: %v", chain.ErrStorageError, err)
		}
	}

	if err := tx.Commit(); err != nil {
		c.metrics.ObserveAppendError()
		return block.ChainedInstance{}, fmt.Errorf("%w: commit: %v", chain.ErrStorageError, err)
	}

	newLength := descriptor.Position + 1
	c.metrics.ObserveAppend(len(recs), newLength)
	c.logger.Debug().Uint64("position", descriptor.Position).Str("hash", descriptor.Hash.String()).Msg("appended block")

	return descriptor, nil
}

func metadataBytes(m *record.Metadata) []byte {
	w := codec.NewWriter()
	m.Encode(w)
	return w.Bytes()
}

// decodeRecordRow rebuilds a record from the records table's five
// columns and re-encodes it in the same combined wire form
// block.EncodeRecord produces, so Block[T].Records() can decode it the
// same way regardless of which backend stored it.
func decodeRecordRow[T record.Payload[T]](codecT record.Codec[T], payloadBytes, hashBytes, signerBytes, signatureBytes, metaBytes []byte) ([]byte, error) {
	payload, err := codecT.Unmarshal(payloadBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	h, err := digest.FromBytes(hashBytes)
	if err != nil {
		return nil, fmt.Errorf("record hash: %w", err)
	}
	metadata, err := record.DecodeMetadata(codec.NewReader(metaBytes))
	if err != nil {
		return nil, fmt.Errorf("record metadata: %w", err)
	}
	rec := record.FromParts[T](payload, h, blockcrypto.PublicKey(signerBytes), blockcrypto.Signature(signatureBytes), metadata)
	return block.EncodeRecord(rec, codecT)
}

func (c *Chain[T]) lastDescriptor(ctx context.Context) (*block.ChainedInstance, error) {
	row := c.db.QueryRowContext(ctx, `SELECT position, hash, prev_hash, merkle_root, nonce FROM blocks ORDER BY position DESC LIMIT 1`)
	var position, nonce uint64
	var hashBytes, prevHashBytes, merkleRootBytes []byte
	err := row.Scan(&position, &hashBytes, &prevHashBytes, &merkleRootBytes, &nonce)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query last block: %v", chain.ErrStorageError, err)
	}
	h, err := digest.FromBytes(hashBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrStorageError, err)
	}
	prevHash, err := digest.FromBytes(prevHashBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrStorageError, err)
	}
	merkleRoot, err := digest.FromBytes(merkleRootBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrStorageError, err)
	}
	return &block.ChainedInstance{Position: position, Hash: h, PrevHash: prevHash, MerkleRoot: merkleRoot, Nonce: nonce}, nil
}

// BlockAt reads the block header plus its records (ordered by seq) and
// reassembles a block.Block[T].
func (c *Chain[T]) BlockAt(ctx context.Context, position uint64) (*block.Block[T], error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT hash, prev_hash, merkle_root, nonce, timestamp, metadata FROM blocks WHERE position = ?`, position)

	var hashBytes, prevHashBytes, merkleRootBytes, metadataBytes []byte
	var nonce uint64
	var timestamp int64
	err := row.Scan(&hashBytes, &prevHashBytes, &merkleRootBytes, &nonce, &timestamp, &metadataBytes)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: position %d", chain.ErrNotFound, position)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query block: %v", chain.ErrStorageError, err)
	}

	h, err := digest.FromBytes(hashBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrStorageError, err)
	}
	prevHash, err := digest.FromBytes(prevHashBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrStorageError, err)
	}
	merkleRoot, err := digest.FromBytes(merkleRootBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrStorageError, err)
	}
	metadata, err := record.DecodeMetadata(codec.NewReader(metadataBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrStorageError, err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT payload, hash, signer, signature, metadata FROM records WHERE block_position = ? ORDER BY seq ASC`, position)
	if err != nil {
		return nil, fmt.Errorf("%w: query records: %v", chain.ErrStorageError, err)
	}
	defer rows.Close()

	var recordBytes [][]byte
	for rows.Next() {
		var payloadBytes, hashBytes, signerBytes, signatureBytes, metaBytes []byte
		if err := rows.Scan(&payloadBytes, &hashBytes, &signerBytes, &signatureBytes, &metaBytes); err != nil {
			return nil, fmt.Errorf("%w: scan record: %v", chain.ErrStorageError, err)
		}
		data, err := decodeRecordRow[T](c.codec, payloadBytes, hashBytes, signerBytes, signatureBytes, metaBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", chain.ErrStorageError, err)
		}
		recordBytes = append(recordBytes, data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrStorageError, err)
	}

	b := block.FromParts(position, prevHash, merkleRoot, nonce, timestamp, h, metadata, recordBytes, c.codec)
	return &b, nil
}

// Len returns the number of blocks currently stored.
func (c *Chain[T]) Len(ctx context.Context) (uint64, error) {
	var count uint64
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blocks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", chain.ErrStorageError, err)
	}
	return count, nil
}

// Close closes the underlying database handle.
func (c *Chain[T]) Close() error {
	return c.db.Close()
}
