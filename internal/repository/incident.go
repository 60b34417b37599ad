package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/shenikar/incident_map/internal/service"
)

const incidentColumns = `
			id,
			creator_id,
			title,
			description,
			address,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			severity,
			media_url,
			hashtags,
			created_at,
			updated_at`

// rowScanner - общий интерфейс pgx.Row и pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (creator_id, title, description, address, location, severity, media_url, hashtags)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326), $7, $8, $9)
		RETURNING id, created_at, updated_at;
	`
	hashtags := incident.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		incident.CreatorID,
		incident.Title,
		incident.Description,
		incident.Address,
		incident.Longitude,
		incident.Latitude,
		incident.Severity,
		incident.MediaURL,
		hashtags,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT` + incidentColumns + `
		FROM incidents
		WHERE id = $1;
	`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("incident with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// Delete удаляет инцидент вместе с его обновлениями
func (r *IncidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM incidents WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete incident: %w", err)
	}

	// RowsAffected() == 0 значит инцидента с таким id не существует
	if cmdTag.RowsAffected() == 0 {
		return apperr.NotFound("incident with id %s not found for delete", id)
	}
	return nil
}

// ListNearby возвращает инциденты в радиусе от точки, новые первыми.
// MinSeverity здесь не применяется: он сравнивается с итоговой тяжестью в сервисе.
func (r *IncidentRepository) ListNearby(ctx context.Context, filter models.NearbyFilter) ([]*models.Incident, error) {
	query, args := nearbyQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list nearby incidents: %w", err)
	}
	return collectIncidents(rows)
}

// ListByHashtags возвращает инциденты, содержащие хотя бы один из тегов
func (r *IncidentRepository) ListByHashtags(ctx context.Context, tags []string, page, pageSize int) ([]*models.Incident, error) {
	offset := (page - 1) * pageSize
	query := `SELECT` + incidentColumns + `
		FROM incidents
		WHERE hashtags && $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, tags, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents by hashtags: %w", err)
	}
	return collectIncidents(rows)
}

// nearbyQuery собирает запрос поиска по радиусу с необязательными фильтрами
func nearbyQuery(f models.NearbyFilter) (string, []any) {
	args := []any{f.Longitude, f.Latitude, f.RadiusMeters}
	where := []string{"ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)"}

	if f.Hashtag != "" {
		args = append(args, f.Hashtag)
		where = append(where, fmt.Sprintf("$%d = ANY(hashtags)", len(args)))
	}
	if !f.Since.IsZero() {
		args = append(args, f.Since)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	query := fmt.Sprintf(`SELECT%s
		FROM incidents
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d;`, incidentColumns, strings.Join(where, " AND "), len(args)-1, len(args))
	return query, args
}

func scanIncident(row rowScanner) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.CreatorID,
		&incident.Title,
		&incident.Description,
		&incident.Address,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Severity,
		&incident.MediaURL,
		&incident.Hashtags,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}

func collectIncidents(rows pgx.Rows) ([]*models.Incident, error) {
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

func incidentCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s", id.String())
}

// GetIncidentFromCache пытается получить инцидент из Redis.
// Промах кеша - (nil, nil).
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, incidentCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis на INCIDENT_CACHE_TTL
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, incidentCacheKey(incident.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, incidentCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
