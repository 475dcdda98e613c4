package store

const schema = `
CREATE TABLE IF NOT EXISTS postings (
    id             TEXT PRIMARY KEY,
    board          TEXT NOT NULL,
    external_id    TEXT NOT NULL,
    title          TEXT NOT NULL,
    company        TEXT NOT NULL DEFAULT '',
    location       TEXT NOT NULL DEFAULT '',
    snippet        TEXT NOT NULL DEFAULT '',
    description    TEXT NOT NULL DEFAULT '',
    url            TEXT NOT NULL DEFAULT '',
    posted_at      DATETIME NOT NULL,
    found_at       DATETIME NOT NULL,
    match_score    REAL NOT NULL DEFAULT 0,
    matched_skills TEXT NOT NULL DEFAULT '[]',
    alerted        BOOLEAN NOT NULL DEFAULT 0,
    UNIQUE(board, external_id)
);

CREATE INDEX IF NOT EXISTS idx_postings_board ON postings(board);
CREATE INDEX IF NOT EXISTS idx_postings_found_at ON postings(found_at);
CREATE INDEX IF NOT EXISTS idx_postings_match_score ON postings(match_score);
CREATE INDEX IF NOT EXISTS idx_postings_alerted ON postings(alerted);
`
