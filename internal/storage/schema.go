// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

// SchemaVersion is bumped when the attempts table changes shape.
const SchemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	at           INTEGER NOT NULL,
	outcome      TEXT NOT NULL,
	fingerprint  TEXT NOT NULL DEFAULT '',
	masked_email TEXT NOT NULL DEFAULT '',
	status       INTEGER NOT NULL DEFAULT 0,
	request_id   TEXT NOT NULL DEFAULT '',
	message      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_attempts_at ON attempts(at);
CREATE INDEX IF NOT EXISTS idx_attempts_fingerprint ON attempts(fingerprint);
`
