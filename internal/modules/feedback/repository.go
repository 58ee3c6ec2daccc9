package feedback

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles feedback persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new feedback repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "feedback").Logger(),
	}
}

// Create inserts a new feedback message
func (r *Repository) Create(msg *Message) (*Message, error) {
	query := `
		INSERT INTO feedback (name, email, message, created_at)
		VALUES (?, ?, ?, ?)
	`

	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")

	result, err := r.db.Exec(query, msg.Name, msg.Email, msg.Message, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	msg.ID = id
	msg.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)

	return msg, nil
}

// GetAll retrieves feedback messages, newest first, with optional limit
func (r *Repository) GetAll(limit *int) ([]Message, error) {
	query := "SELECT id, name, email, message, created_at FROM feedback ORDER BY created_at DESC, id DESC"
	if limit != nil {
		query += fmt.Sprintf(" LIMIT %d", *limit)
	}

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var createdAt string

		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}

		m.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return messages, nil
}

// Delete removes a feedback message; reports whether a row existed
func (r *Repository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM feedback WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete feedback: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected > 0, nil
}
