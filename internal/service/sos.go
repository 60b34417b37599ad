package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/config"
	"github.com/shenikar/incident_map/internal/metrics"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/shenikar/incident_map/internal/webhook"
	"github.com/sirupsen/logrus"
)

const defaultHistoryLimit = 50

// SOSRepository определяет контракт хранения получателей и событий SOS
type SOSRepository interface {
	CreateRecipient(ctx context.Context, recipient *models.Recipient) error
	ListRecipients(ctx context.Context, ownerID string) ([]*models.Recipient, error)
	DeleteRecipient(ctx context.Context, ownerID string, id uuid.UUID) error
	CreateEvent(ctx context.Context, event *models.SOSEvent) error
	DeleteEvent(ctx context.Context, id int64) error
	ListEvents(ctx context.Context, userID string, limit int) ([]*models.SOSEvent, error)
	GetStats(ctx context.Context, windowMinutes int) (*models.SOSStats, error)
}

// SOSService определяет контракт для получателей и отправки SOS
type SOSService interface {
	AddRecipient(ctx context.Context, recipient *models.Recipient) error
	ListRecipients(ctx context.Context, ownerID string) ([]*models.Recipient, error)
	RemoveRecipient(ctx context.Context, ownerID string, id uuid.UUID) error
	Trigger(ctx context.Context, event *models.SOSEvent, email string) (int, error)
	History(ctx context.Context, userID string, limit int) ([]*models.SOSEvent, error)
	Stats(ctx context.Context) (*models.SOSStats, error)
}

type sosService struct {
	repo             SOSRepository
	logger           *logrus.Logger
	cfg              *config.Config
	webhookPublisher webhook.WebhookPublisher
}

func NewSOSService(repo SOSRepository, logger *logrus.Logger, cfg *config.Config, publisher webhook.WebhookPublisher) SOSService {
	return &sosService{
		repo:             repo,
		logger:           logger,
		cfg:              cfg,
		webhookPublisher: publisher,
	}
}

// AddRecipient добавляет контакт для SOS-оповещений
func (s *sosService) AddRecipient(ctx context.Context, recipient *models.Recipient) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sos",
		"method":  "AddRecipient",
		"user_id": recipient.OwnerID,
	})

	recipient.Name = strings.TrimSpace(recipient.Name)
	if recipient.Phone == "" && recipient.Email == "" {
		return apperr.Validation("recipient needs a phone or an email")
	}
	if err := s.repo.CreateRecipient(ctx, recipient); err != nil {
		log.WithError(err).Error("Failed to create recipient in repository")
		return fmt.Errorf("service: could not add recipient: %w", err)
	}

	log.WithField("recipient_id", recipient.ID).Info("Recipient added successfully")
	return nil
}

func (s *sosService) ListRecipients(ctx context.Context, ownerID string) ([]*models.Recipient, error) {
	recipients, err := s.repo.ListRecipients(ctx, ownerID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "sos",
			"method":  "ListRecipients",
			"user_id": ownerID,
		}).WithError(err).Error("Failed to list recipients from repository")
		return nil, fmt.Errorf("service: could not list recipients: %w", err)
	}
	return recipients, nil
}

func (s *sosService) RemoveRecipient(ctx context.Context, ownerID string, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "sos",
		"method":       "RemoveRecipient",
		"user_id":      ownerID,
		"recipient_id": id,
	})
	if err := s.repo.DeleteRecipient(ctx, ownerID, id); err != nil {
		log.WithError(err).Warn("Failed to delete recipient")
		return fmt.Errorf("service: could not remove recipient: %w", err)
	}
	log.Info("Recipient removed successfully")
	return nil
}

// Trigger сохраняет SOS-событие и ставит оповещение получателей в очередь.
// Возвращает число получателей.
func (s *sosService) Trigger(ctx context.Context, event *models.SOSEvent, email string) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sos",
		"method":  "Trigger",
		"user_id": event.UserID,
	})
	log.Info("SOS triggered")

	recipients, err := s.repo.ListRecipients(ctx, event.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to list recipients from repository")
		return 0, fmt.Errorf("service: could not trigger sos: %w", err)
	}
	if len(recipients) == 0 {
		return 0, apperr.Validation("add at least one SOS recipient first")
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		log.WithError(err).Error("Failed to save sos event")
		return 0, fmt.Errorf("service: could not trigger sos: %w", err)
	}

	alert := webhook.SOSAlertEvent{
		EventID:    event.ID,
		UserID:     event.UserID,
		Email:      email,
		Latitude:   event.Latitude,
		Longitude:  event.Longitude,
		Message:    event.Message,
		Timestamp:  event.CreatedAt,
		Recipients: recipients,
	}
	if err := s.webhookPublisher.Publish(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to publish sos event")
		// неотправленное событие не остается в истории и статистике
		if delErr := s.repo.DeleteEvent(ctx, event.ID); delErr != nil {
			log.WithError(delErr).WithField("event_id", event.ID).Error("Failed to roll back undelivered sos event")
		}
		return 0, fmt.Errorf("service: could not deliver sos: %w", err)
	}
	metrics.SOSTriggered.Inc()

	log.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"recipients": len(recipients),
	}).Info("SOS event queued for delivery")
	return len(recipients), nil
}

func (s *sosService) History(ctx context.Context, userID string, limit int) ([]*models.SOSEvent, error) {
	if limit < 1 || limit > 200 {
		limit = defaultHistoryLimit
	}
	events, err := s.repo.ListEvents(ctx, userID, limit)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "sos",
			"method":  "History",
			"user_id": userID,
		}).WithError(err).Error("Failed to list sos events")
		return nil, fmt.Errorf("service: could not list sos history: %w", err)
	}
	return events, nil
}

// Stats возвращает статистику SOS за окно STATS_TIME_WINDOW_MINUTES
func (s *sosService) Stats(ctx context.Context) (*models.SOSStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sos",
		"method":  "Stats",
		"window":  s.cfg.StatsTimeWindowMinutes,
	})
	log.Info("Getting sos stats")

	stats, err := s.repo.GetStats(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		log.WithError(err).Error("Failed to get sos stats from repository")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}
	return stats, nil
}
