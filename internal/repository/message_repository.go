package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soportek/helpdesk-service/internal/domain"
)

// MessageRepository manages private user messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	Update(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	// List returns messages, optionally restricted to a single sender.
	List(ctx context.Context, senderID *string, page Page) ([]domain.Message, error)
	Delete(ctx context.Context, id string) error
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (body, sender_id)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		msg.Body,
		msg.SenderID,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
}

func (r *messageRepository) Update(ctx context.Context, msg *domain.Message) error {
	const query = `
        UPDATE messages SET body=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, msg.Body, msg.ID).Scan(&msg.UpdatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	const query = `
        SELECT id, body, sender_id, created_at, updated_at
        FROM messages WHERE id=$1`
	var msg domain.Message
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.Body,
		&msg.SenderID,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) List(ctx context.Context, senderID *string, page Page) ([]domain.Message, error) {
	page = page.Normalize()

	query := `
        SELECT id, body, sender_id, created_at, updated_at
        FROM messages ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	args := []any{page.Limit, page.Skip}
	if senderID != nil {
		query = `
        SELECT id, body, sender_id, created_at, updated_at
        FROM messages WHERE sender_id=$3 ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, *senderID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.Body,
			&msg.SenderID,
			&msg.CreatedAt,
			&msg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
