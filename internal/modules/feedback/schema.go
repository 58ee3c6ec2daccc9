package feedback

import "database/sql"

// Schema for the feedback message store.
const Schema = `
CREATE TABLE IF NOT EXISTS feedback (
    id INTEGER PRIMARY KEY,
    name TEXT,
    email TEXT,
    message TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback(created_at);
`

// InitSchema ensures the feedback table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
