package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/portfolio-site/portfolio-backend/internal/messages/domain"
)

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// List returns every message, newest first.
func (r *MessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	const q = `
SELECT id, name, email, message, read, created_at
FROM messages
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Message, 0, 16)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Insert stores a new message; read is left to the column default.
func (r *MessageRepository) Insert(ctx context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	const q = `
INSERT INTO messages (id, name, email, message)
VALUES ($1, $2, $3, $4)
RETURNING read, created_at;
`
	return r.db.QueryRowContext(ctx, q, m.ID, m.Name, m.Email, m.Message).Scan(&m.Read, &m.CreatedAt)
}

// MarkRead sets read = true. Repeating it, or naming an unknown id, changes
// nothing.
func (r *MessageRepository) MarkRead(ctx context.Context, id string) error {
	const q = `UPDATE messages SET read = true WHERE id = $1;`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM messages WHERE id = $1;`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
