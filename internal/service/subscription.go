package service

import (
	"context"
	"fmt"

	"github.com/shenikar/incident_map/internal/hashtag"
	"github.com/sirupsen/logrus"
)

// SubscriptionRepository определяет контракт хранения подписок на хэштеги
type SubscriptionRepository interface {
	Subscribe(ctx context.Context, userID, tag string) error
	Unsubscribe(ctx context.Context, userID, tag string) error
	ListHashtags(ctx context.Context, userID string) ([]string, error)
}

// SubscriptionService определяет контракт управления подписками
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, rawTag string) (string, error)
	Unsubscribe(ctx context.Context, userID, rawTag string) error
	List(ctx context.Context, userID string) ([]string, error)
}

type subscriptionService struct {
	repo   SubscriptionRepository
	logger *logrus.Logger
}

func NewSubscriptionService(repo SubscriptionRepository, logger *logrus.Logger) SubscriptionService {
	return &subscriptionService{repo: repo, logger: logger}
}

// Subscribe подписывает пользователя на хэштег и возвращает нормализованный тег
func (s *subscriptionService) Subscribe(ctx context.Context, userID, rawTag string) (string, error) {
	tag, err := hashtag.Normalize(rawTag)
	if err != nil {
		return "", err
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "subscription",
		"method":  "Subscribe",
		"user_id": userID,
		"hashtag": tag,
	})
	if err := s.repo.Subscribe(ctx, userID, tag); err != nil {
		log.WithError(err).Error("Failed to save subscription")
		return "", fmt.Errorf("service: could not subscribe: %w", err)
	}
	log.Info("Subscribed to hashtag")
	return tag, nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, rawTag string) error {
	tag, err := hashtag.Normalize(rawTag)
	if err != nil {
		return err
	}
	if err := s.repo.Unsubscribe(ctx, userID, tag); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "subscription",
			"method":  "Unsubscribe",
			"user_id": userID,
			"hashtag": tag,
		}).WithError(err).Warn("Failed to remove subscription")
		return fmt.Errorf("service: could not unsubscribe: %w", err)
	}
	return nil
}

func (s *subscriptionService) List(ctx context.Context, userID string) ([]string, error) {
	tags, err := s.repo.ListHashtags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list subscriptions: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
