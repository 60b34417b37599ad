package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/config"
	"github.com/shenikar/incident_map/internal/hashtag"
	"github.com/shenikar/incident_map/internal/live"
	"github.com/shenikar/incident_map/internal/media"
	"github.com/shenikar/incident_map/internal/metrics"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/shenikar/incident_map/internal/severity"
	"github.com/sirupsen/logrus"
)

const (
	defaultRadiusMeters = 5000
	maxRadiusMeters     = 50000
	// сколько инцидентов просматривается при фильтре по итоговой тяжести
	maxNearbyScan = 500
)

// IncidentRepository определяет контракт для работы с бд инцидентов и их обновлений
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListNearby(ctx context.Context, filter models.NearbyFilter) ([]*models.Incident, error)
	ListByHashtags(ctx context.Context, tags []string, page, pageSize int) ([]*models.Incident, error)

	CreateUpdate(ctx context.Context, update *models.Update) error
	GetUpdate(ctx context.Context, incidentID, updateID uuid.UUID) (*models.Update, error)
	DeleteUpdate(ctx context.Context, updateID uuid.UUID) error
	ListUpdates(ctx context.Context, incidentID uuid.UUID) ([]*models.Update, error)
	ListUpdatesByIncidents(ctx context.Context, incidentIDs []uuid.UUID) (map[uuid.UUID][]*models.Update, error)

	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// IncidentService определяет контракт бизнес-логики инцидентов
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident) error
	GetIncident(ctx context.Context, id uuid.UUID) (*models.IncidentView, error)
	ListNearby(ctx context.Context, filter models.NearbyFilter) ([]*models.IncidentView, error)
	Feed(ctx context.Context, userID string, page, pageSize int) ([]*models.IncidentView, error)
	DeleteIncident(ctx context.Context, userID string, id uuid.UUID) error
}

type incidentService struct {
	repo      IncidentRepository
	subs      SubscriptionRepository
	evidence  *evidenceChecker
	addresses AddressService
	live      live.Broadcaster
	logger    *logrus.Logger
	now       func() time.Time
}

func NewIncidentService(
	repo IncidentRepository,
	subs SubscriptionRepository,
	mediaStorage MediaStorage,
	addresses AddressService,
	broadcaster live.Broadcaster,
	logger *logrus.Logger,
	cfg *config.Config,
) IncidentService {
	return &incidentService{
		repo:      repo,
		subs:      subs,
		evidence:  &evidenceChecker{storage: mediaStorage, limits: limitsFrom(cfg.MaxImageBytes, cfg.MaxVideoBytes)},
		addresses: addresses,
		live:      broadcaster,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateIncident проверяет доказательства и создает инцидент
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "CreateIncident",
		"user_id":  incident.CreatorID,
		"severity": incident.Severity,
	})
	log.Info("Attempting to create a new incident")

	if incident.Severity < severity.MinSeverity || incident.Severity > severity.MaxSeverity {
		return apperr.Validation("severity must be between 1 and 10")
	}
	if err := s.evidence.check(ctx, incident.CreatorID, incident.Severity, incident.MediaURL); err != nil {
		log.WithError(err).Warn("Incident media rejected")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	incident.Hashtags = hashtag.Extract(incident.Title, incident.Description)
	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	if incident.Address != "" {
		if err := s.addresses.Remember(ctx, incident.Latitude, incident.Longitude, incident.Address); err != nil {
			log.WithError(err).Warn("Failed to remember incident address")
		}
	}
	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}

	metrics.IncidentsCreated.WithLabelValues(string(media.RequiredKind(incident.Severity))).Inc()
	s.live.Broadcast(live.Message{Type: live.MessageTypeIncidentCreated, Data: incident})

	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	return nil
}

// GetIncident возвращает инцидент, его обновления и итоговую тяжесть
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.IncidentView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Info("Fetching incident by ID")

	incident, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if incident == nil {
		incident, err = s.repo.GetByID(ctx, id)
		if err != nil {
			log.WithError(err).Error("Failed to get incident in repository")
			return nil, fmt.Errorf("service: could not get incident: %w", err)
		}
		if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
			log.WithError(err).Warn("Failed to cache incident")
		}
	}

	updates, err := s.repo.ListUpdates(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to list incident updates")
		return nil, fmt.Errorf("service: could not list updates: %w", err)
	}

	view := s.view(incident, updates)
	log.WithField("aggregate_severity", view.AggregateSeverity).Info("Incident fetched successfully")
	return view, nil
}

// ListNearby возвращает инциденты в радиусе от точки.
// MinSeverity сравнивается с итоговой тяжестью, а не с заявленной.
func (s *incidentService) ListNearby(ctx context.Context, filter models.NearbyFilter) ([]*models.IncidentView, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	if filter.RadiusMeters <= 0 {
		filter.RadiusMeters = defaultRadiusMeters
	}
	if filter.RadiusMeters > maxRadiusMeters {
		filter.RadiusMeters = maxRadiusMeters
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":      "incident",
		"method":       "ListNearby",
		"radius":       filter.RadiusMeters,
		"min_severity": filter.MinSeverity,
		"hashtag":      filter.Hashtag,
		"page":         filter.Page,
	})
	log.Info("Listing nearby incidents")

	query := filter
	if filter.MinSeverity > 0 {
		query.Page, query.PageSize = 1, maxNearbyScan
	}
	incidents, err := s.repo.ListNearby(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to list nearby incidents from repository")
		return nil, fmt.Errorf("service: could not list nearby incidents: %w", err)
	}
	if filter.MinSeverity > 0 && len(incidents) >= maxNearbyScan {
		log.WithField("scan_limit", maxNearbyScan).Warn("Nearby scan limit reached, older incidents were not filtered")
	}

	views, err := s.views(ctx, incidents)
	if err != nil {
		log.WithError(err).Error("Failed to load updates for nearby incidents")
		return nil, fmt.Errorf("service: could not list nearby incidents: %w", err)
	}

	if filter.MinSeverity > 0 {
		filtered := views[:0]
		for _, v := range views {
			if v.AggregateSeverity >= filter.MinSeverity {
				filtered = append(filtered, v)
			}
		}
		views = paginate(filtered, filter.Page, filter.PageSize)
	}

	log.WithField("count", len(views)).Info("Nearby incidents listed successfully")
	return views, nil
}

// Feed возвращает инциденты по хэштегам, на которые подписан пользователь
func (s *incidentService) Feed(ctx context.Context, userID string, page, pageSize int) ([]*models.IncidentView, error) {
	page, pageSize = normalizePage(page, pageSize)
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "Feed",
		"user_id": userID,
		"page":    page,
	})
	log.Info("Building hashtag feed")

	tags, err := s.subs.ListHashtags(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list subscriptions")
		return nil, fmt.Errorf("service: could not build feed: %w", err)
	}
	if len(tags) == 0 {
		return []*models.IncidentView{}, nil
	}

	incidents, err := s.repo.ListByHashtags(ctx, tags, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents by hashtags")
		return nil, fmt.Errorf("service: could not build feed: %w", err)
	}
	views, err := s.views(ctx, incidents)
	if err != nil {
		log.WithError(err).Error("Failed to load updates for feed")
		return nil, fmt.Errorf("service: could not build feed: %w", err)
	}

	log.WithField("count", len(views)).Info("Feed built successfully")
	return views, nil
}

// DeleteIncident удаляет инцидент. Удалять может только автор.
func (s *incidentService) DeleteIncident(ctx context.Context, userID string, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
		"user_id":     userID,
	})
	log.Info("Attempting to delete incident")

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent incident")
		return fmt.Errorf("service: incident with id %s not found for delete: %w", id, err)
	}
	if incident.CreatorID != userID {
		log.Warn("Attempted to delete someone else's incident")
		return apperr.Forbidden("only the creator can delete incident %s", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete incident in repository")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	s.live.Broadcast(live.Message{Type: live.MessageTypeIncidentDeleted, Data: map[string]any{"id": id}})
	log.Info("Incident deleted successfully")
	return nil
}

func (s *incidentService) views(ctx context.Context, incidents []*models.Incident) ([]*models.IncidentView, error) {
	views := make([]*models.IncidentView, 0, len(incidents))
	if len(incidents) == 0 {
		return views, nil
	}
	ids := make([]uuid.UUID, len(incidents))
	for i, inc := range incidents {
		ids[i] = inc.ID
	}
	updates, err := s.repo.ListUpdatesByIncidents(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, inc := range incidents {
		views = append(views, s.view(inc, updates[inc.ID]))
	}
	return views, nil
}

func (s *incidentService) view(incident *models.Incident, updates []*models.Update) *models.IncidentView {
	if updates == nil {
		updates = []*models.Update{}
	}
	aggregate := severity.Round(severity.Aggregate(incident.Severity, samples(updates), s.now()))
	metrics.AggregateSeverity.Observe(aggregate)
	return &models.IncidentView{
		Incident:          incident,
		Updates:           updates,
		AggregateSeverity: aggregate,
	}
}

func samples(updates []*models.Update) []severity.Sample {
	out := make([]severity.Sample, len(updates))
	for i, u := range updates {
		out[i] = severity.Sample{Severity: u.Severity, CreatedAt: u.CreatedAt}
	}
	return out
}

func paginate(views []*models.IncidentView, page, pageSize int) []*models.IncidentView {
	start := (page - 1) * pageSize
	if start >= len(views) {
		return []*models.IncidentView{}
	}
	end := start + pageSize
	if end > len(views) {
		end = len(views)
	}
	return views[start:end]
}
