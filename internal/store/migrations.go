package store

const schema = `
CREATE TABLE IF NOT EXISTS score_history (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    username    TEXT NOT NULL,
    score       REAL NOT NULL DEFAULT 0,
    total_posts INTEGER NOT NULL DEFAULT 0,
    recorded_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_username ON score_history(username);
CREATE INDEX IF NOT EXISTS idx_history_recorded ON score_history(recorded_at);
`
