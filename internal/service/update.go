package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/config"
	"github.com/shenikar/incident_map/internal/live"
	"github.com/shenikar/incident_map/internal/metrics"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/shenikar/incident_map/internal/severity"
	"github.com/sirupsen/logrus"
)

// UpdateService определяет контракт для дополнений и опровержений инцидентов
type UpdateService interface {
	PostUpdate(ctx context.Context, update *models.Update) error
	DeleteUpdate(ctx context.Context, userID string, incidentID, updateID uuid.UUID) error
}

type updateService struct {
	repo     IncidentRepository
	evidence *evidenceChecker
	live     live.Broadcaster
	logger   *logrus.Logger
}

func NewUpdateService(repo IncidentRepository, mediaStorage MediaStorage, broadcaster live.Broadcaster, logger *logrus.Logger, cfg *config.Config) UpdateService {
	return &updateService{
		repo:     repo,
		evidence: &evidenceChecker{storage: mediaStorage, limits: limitsFrom(cfg.MaxImageBytes, cfg.MaxVideoBytes)},
		live:     broadcaster,
		logger:   logger,
	}
}

// PostUpdate публикует обновление. Медиа проверяется по тяжести самого обновления.
func (s *updateService) PostUpdate(ctx context.Context, update *models.Update) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "update",
		"method":      "PostUpdate",
		"incident_id": update.IncidentID,
		"user_id":     update.AuthorID,
		"kind":        update.Kind,
	})
	log.Info("Attempting to post incident update")

	if update.Kind != models.UpdateKindUpdate && update.Kind != models.UpdateKindDisprove {
		return apperr.Validation("kind must be %q or %q", models.UpdateKindUpdate, models.UpdateKindDisprove)
	}
	if update.Severity < severity.MinSeverity || update.Severity > severity.MaxSeverity {
		return apperr.Validation("severity must be between 1 and 10")
	}

	if _, err := s.repo.GetByID(ctx, update.IncidentID); err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent incident")
		return fmt.Errorf("service: incident with id %s not found for update: %w", update.IncidentID, err)
	}
	if err := s.evidence.check(ctx, update.AuthorID, update.Severity, update.MediaURL); err != nil {
		log.WithError(err).Warn("Update media rejected")
		return fmt.Errorf("service: could not post update: %w", err)
	}

	if err := s.repo.CreateUpdate(ctx, update); err != nil {
		log.WithError(err).Error("Failed to create update in repository")
		return fmt.Errorf("service: could not post update: %w", err)
	}
	if err := s.repo.InvalidateIncidentCache(ctx, update.IncidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	metrics.UpdatesPosted.WithLabelValues(string(update.Kind)).Inc()
	s.live.Broadcast(live.Message{Type: live.MessageTypeUpdatePosted, Data: update})

	log.WithField("update_id", update.ID).Info("Update posted successfully")
	return nil
}

// DeleteUpdate удаляет обновление. Разрешено автору обновления,
// а также автору инцидента, если это не опровержение.
func (s *updateService) DeleteUpdate(ctx context.Context, userID string, incidentID, updateID uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "update",
		"method":      "DeleteUpdate",
		"incident_id": incidentID,
		"update_id":   updateID,
		"user_id":     userID,
	})
	log.Info("Attempting to delete incident update")

	update, err := s.repo.GetUpdate(ctx, incidentID, updateID)
	if err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent update")
		return fmt.Errorf("service: update with id %s not found for delete: %w", updateID, err)
	}

	if update.AuthorID != userID {
		incident, err := s.repo.GetByID(ctx, incidentID)
		if err != nil {
			log.WithError(err).Error("Failed to load incident for update delete")
			return fmt.Errorf("service: could not delete update: %w", err)
		}
		if !canDeleteUpdate(userID, incident, update) {
			log.Warn("Attempted to delete someone else's update")
			return apperr.Forbidden("not allowed to delete update %s", updateID)
		}
	}

	if err := s.repo.DeleteUpdate(ctx, updateID); err != nil {
		log.WithError(err).Error("Failed to delete update in repository")
		return fmt.Errorf("service: could not delete update: %w", err)
	}
	if err := s.repo.InvalidateIncidentCache(ctx, incidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	s.live.Broadcast(live.Message{Type: live.MessageTypeUpdateDeleted, Data: map[string]any{
		"incident_id": incidentID,
		"id":          updateID,
	}})
	log.Info("Update deleted successfully")
	return nil
}

func canDeleteUpdate(userID string, incident *models.Incident, update *models.Update) bool {
	if update.AuthorID == userID {
		return true
	}
	return incident.CreatorID == userID && update.Kind == models.UpdateKindUpdate
}
