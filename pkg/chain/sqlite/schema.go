package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema is blockify's embedded relational store schema: one row per
// block header in blocks, one row per record in records, linked by
// position, plus a chain_meta table holding the schema version and an
// index on records.block_position. It carries no account/source/cache
// bookkeeping, since a caller wanting a queryable transaction index is
// explicitly out of scope.
const Schema = `
CREATE TABLE IF NOT EXISTS blocks (
    position    INTEGER PRIMARY KEY,
    hash        BLOB NOT NULL UNIQUE,
    prev_hash   BLOB NOT NULL,
    merkle_root BLOB NOT NULL,
    nonce       INTEGER NOT NULL,
    timestamp   INTEGER NOT NULL,
    metadata    BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
    block_position INTEGER NOT NULL,
    seq            INTEGER NOT NULL,
    payload        BLOB NOT NULL,
    hash           BLOB NOT NULL,
    signer         BLOB NOT NULL,
    signature      BLOB NOT NULL,
    metadata       BLOB NOT NULL,
    FOREIGN KEY(block_position) REFERENCES blocks(position),
    PRIMARY KEY(block_position, seq)
);

CREATE INDEX IF NOT EXISTS idx_records_block_position ON records(block_position);

CREATE TABLE IF NOT EXISTS chain_meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

INSERT OR IGNORE INTO chain_meta (key, value) VALUES ('schema_version', '1');
`

// InitSchema creates the schema if absent and verifies it afterward.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return verifySchema(db)
}

func verifySchema(db *sql.DB) error {
	for _, table := range []string{"blocks", "records", "chain_meta"} {
		var count int
		query := "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?"
		if err := db.QueryRow(query, table).Scan(&count); err != nil {
			return fmt.Errorf("check table %s: %w", table, err)
		}
		if count == 0 {
			return fmt.Errorf("required table %s not found", table)
		}
	}
	return nil
}

// SchemaVersion returns the schema_version value recorded in chain_meta.
func SchemaVersion(db *sql.DB) (string, error) {
	var version string
	err := db.QueryRow("SELECT value FROM chain_meta WHERE key = 'schema_version'").Scan(&version)
	if err != nil {
		return "", fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}
