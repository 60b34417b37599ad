package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/shenikar/incident_map/internal/service"
)

type SOSRepository struct {
	db *pgxpool.Pool
}

func NewSOSRepository(db *pgxpool.Pool) service.SOSRepository {
	return &SOSRepository{db: db}
}

// CreateRecipient сохраняет контакт для SOS-оповещений
func (r *SOSRepository) CreateRecipient(ctx context.Context, recipient *models.Recipient) error {
	query := `
		INSERT INTO sos_recipients (owner_id, name, phone, email)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		recipient.OwnerID,
		recipient.Name,
		recipient.Phone,
		recipient.Email,
	).Scan(&recipient.ID, &recipient.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sos recipient: %w", err)
	}
	return nil
}

func (r *SOSRepository) ListRecipients(ctx context.Context, ownerID string) ([]*models.Recipient, error) {
	query := `
		SELECT id, owner_id, name, phone, email, created_at
		FROM sos_recipients
		WHERE owner_id = $1
		ORDER BY created_at;
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sos recipients: %w", err)
	}
	defer rows.Close()

	recipients := make([]*models.Recipient, 0)
	for rows.Next() {
		rc := &models.Recipient{}
		if err := rows.Scan(&rc.ID, &rc.OwnerID, &rc.Name, &rc.Phone, &rc.Email, &rc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipient row: %w", err)
		}
		recipients = append(recipients, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return recipients, nil
}

// DeleteRecipient удаляет контакт, только если он принадлежит владельцу
func (r *SOSRepository) DeleteRecipient(ctx context.Context, ownerID string, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sos_recipients WHERE id = $1 AND owner_id = $2;`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete sos recipient: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperr.NotFound("recipient with id %s not found", id)
	}
	return nil
}

// CreateEvent сохраняет запись о нажатии SOS в бд
func (r *SOSRepository) CreateEvent(ctx context.Context, event *models.SOSEvent) error {
	query := `
		INSERT INTO sos_events (user_id, location, message)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326), $4) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		event.UserID,
		event.Longitude,
		event.Latitude,
		event.Message,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save sos event: %w", err)
	}
	return nil
}

// DeleteEvent удаляет событие, оповещение по которому не удалось поставить в очередь
func (r *SOSRepository) DeleteEvent(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sos_events WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("failed to delete sos event: %w", err)
	}
	return nil
}

func (r *SOSRepository) ListEvents(ctx context.Context, userID string, limit int) ([]*models.SOSEvent, error) {
	query := `
		SELECT
			id,
			user_id,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			message,
			created_at
		FROM sos_events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sos events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.SOSEvent, 0)
	for rows.Next() {
		e := &models.SOSEvent{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Latitude, &e.Longitude, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sos event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return events, nil
}

// GetStats возвращает число SOS и уникальных пользователей за последние minutes минут
func (r *SOSRepository) GetStats(ctx context.Context, minutes int) (*models.SOSStats, error) {
	query := `
		SELECT COUNT(*), COUNT(DISTINCT user_id)
		FROM sos_events
		WHERE created_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	stats := &models.SOSStats{WindowMinutes: minutes}
	if err := r.db.QueryRow(ctx, query, minutes).Scan(&stats.Events, &stats.Users); err != nil {
		return nil, fmt.Errorf("failed to get sos stats: %w", err)
	}
	return stats, nil
}
