package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo токены API по чатам.
type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Get пустая строка, если токена нет.
func (r *Repo) Get(ctx context.Context, chatID int64) (string, error) {
	var token string
	err := r.pool.QueryRow(ctx, `SELECT token FROM auth_tokens WHERE chat_id = $1`, chatID).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return token, err
}

func (r *Repo) Save(ctx context.Context, chatID int64, username, token string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO auth_tokens (chat_id, username, token, updated_at)
		VALUES ($1,$2,$3,now())
		ON CONFLICT (chat_id) DO UPDATE SET
		  username=$2, token=$3, updated_at=now()
	`, chatID, username, token)
	return err
}

func (r *Repo) Delete(ctx context.Context, chatID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM auth_tokens WHERE chat_id = $1`, chatID)
	return err
}
