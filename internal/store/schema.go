package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the sqlite store. Patterns are stored
// in their angle-bracket text notation; handles are plain integers with -1
// marking an absent reference.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS nodes (
    ref INTEGER PRIMARY KEY,
    modality TEXT NOT NULL,
    contents TEXT NOT NULL,
    image TEXT NOT NULL,
    followed_by INTEGER NOT NULL DEFAULT -1,
    named_by INTEGER NOT NULL DEFAULT -1
);

-- Test links, ordered per parent so retrieval order survives a round trip
CREATE TABLE IF NOT EXISTS links (
    parent INTEGER NOT NULL REFERENCES nodes(ref),
    position INTEGER NOT NULL,
    test TEXT NOT NULL,
    child INTEGER NOT NULL REFERENCES nodes(ref),
    PRIMARY KEY (parent, position)
);

CREATE TABLE IF NOT EXISTS roots (
    modality TEXT PRIMARY KEY,
    ref INTEGER NOT NULL REFERENCES nodes(ref)
);

CREATE TABLE IF NOT EXISTS schema_meta (
    version INTEGER NOT NULL
);
`

// InitSchema creates the schema if it does not exist and records the
// schema version.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_meta`).Scan(&count); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if count == 0 {
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_meta (version) VALUES (?)`, SchemaVersion); err != nil {
			return fmt.Errorf("recording schema version: %w", err)
		}
	}
	return nil
}
