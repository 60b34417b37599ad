package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/incident_map/internal/service"
)

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) service.SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Subscribe идемпотентен: повторная подписка не ошибка
func (r *SubscriptionRepository) Subscribe(ctx context.Context, userID, tag string) error {
	query := `
		INSERT INTO hashtag_subscriptions (user_id, hashtag)
		VALUES ($1, $2)
		ON CONFLICT (user_id, hashtag) DO NOTHING;
	`
	if _, err := r.db.Exec(ctx, query, userID, tag); err != nil {
		return fmt.Errorf("failed to subscribe to hashtag: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, userID, tag string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM hashtag_subscriptions WHERE user_id = $1 AND hashtag = $2;`, userID, tag); err != nil {
		return fmt.Errorf("failed to unsubscribe from hashtag: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) ListHashtags(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT hashtag FROM hashtag_subscriptions WHERE user_id = $1 ORDER BY hashtag;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return tags, nil
}
