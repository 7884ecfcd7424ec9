package storage

const schema = `
-- The 'users' table holds registered learners.
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

-- The 'seen_words' table records which deck notes were already served to a
-- learner. Append-only; the unique pair gives the set its semantics.
CREATE TABLE IF NOT EXISTS seen_words (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    anki_note_id INTEGER NOT NULL,
    added_at DATETIME NOT NULL,

    UNIQUE(user_id, anki_note_id),
    FOREIGN KEY(user_id) REFERENCES users(id)
);
`
