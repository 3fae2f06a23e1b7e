package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS credentials (
    id          INTEGER PRIMARY KEY CHECK (id = 1),
    token       TEXT NOT NULL,
    user_json   TEXT NOT NULL,
    saved_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS flags (
    name        TEXT PRIMARY KEY,
    value       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS group_snapshots (
    group_id       TEXT PRIMARY KEY,
    balances_json  TEXT NOT NULL,
    ledger_json    TEXT NOT NULL,
    fetched_at     TEXT NOT NULL
);
`
