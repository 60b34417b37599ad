package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/models"
)

const updateColumns = `id, incident_id, author_id, kind, severity, text, media_url, created_at`

// CreateUpdate сохраняет дополнение или опровержение инцидента
func (r *IncidentRepository) CreateUpdate(ctx context.Context, update *models.Update) error {
	query := `
		INSERT INTO incident_updates (incident_id, author_id, kind, severity, text, media_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		update.IncidentID,
		update.AuthorID,
		string(update.Kind),
		update.Severity,
		update.Text,
		update.MediaURL,
	).Scan(&update.ID, &update.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident update: %w", err)
	}
	return nil
}

// GetUpdate возвращает обновление, принадлежащее инциденту
func (r *IncidentRepository) GetUpdate(ctx context.Context, incidentID, updateID uuid.UUID) (*models.Update, error) {
	query := `SELECT ` + updateColumns + `
		FROM incident_updates
		WHERE id = $1 AND incident_id = $2;
	`
	update, err := scanUpdate(r.db.QueryRow(ctx, query, updateID, incidentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("update with id %s not found", updateID)
		}
		return nil, fmt.Errorf("failed to get incident update: %w", err)
	}
	return update, nil
}

func (r *IncidentRepository) DeleteUpdate(ctx context.Context, updateID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM incident_updates WHERE id = $1;`, updateID)
	if err != nil {
		return fmt.Errorf("failed to delete incident update: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperr.NotFound("update with id %s not found for delete", updateID)
	}
	return nil
}

// ListUpdates возвращает обновления инцидента в порядке создания
func (r *IncidentRepository) ListUpdates(ctx context.Context, incidentID uuid.UUID) ([]*models.Update, error) {
	query := `SELECT ` + updateColumns + `
		FROM incident_updates
		WHERE incident_id = $1
		ORDER BY created_at;
	`
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incident updates: %w", err)
	}
	defer rows.Close()

	updates := make([]*models.Update, 0)
	for rows.Next() {
		update, err := scanUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan update row: %w", err)
		}
		updates = append(updates, update)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return updates, nil
}

// ListUpdatesByIncidents загружает обновления сразу для нескольких инцидентов одним запросом
func (r *IncidentRepository) ListUpdatesByIncidents(ctx context.Context, incidentIDs []uuid.UUID) (map[uuid.UUID][]*models.Update, error) {
	result := make(map[uuid.UUID][]*models.Update, len(incidentIDs))
	if len(incidentIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(incidentIDs))
	for i, id := range incidentIDs {
		ids[i] = id.String()
	}
	query := `SELECT ` + updateColumns + `
		FROM incident_updates
		WHERE incident_id = ANY($1::uuid[])
		ORDER BY created_at;
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates for incidents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		update, err := scanUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan update row: %w", err)
		}
		result[update.IncidentID] = append(result[update.IncidentID], update)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return result, nil
}

func scanUpdate(row rowScanner) (*models.Update, error) {
	update := &models.Update{}
	var kind string
	err := row.Scan(
		&update.ID,
		&update.IncidentID,
		&update.AuthorID,
		&kind,
		&update.Severity,
		&update.Text,
		&update.MediaURL,
		&update.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	update.Kind = models.UpdateKind(kind)
	return update, nil
}
