package service

import (
	"context"
	"fmt"

	"github.com/shenikar/incident_map/internal/config"
	"github.com/shenikar/incident_map/internal/media"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/sirupsen/logrus"
)

// MediaService выдает ссылки на загрузку только для файлов, прошедших политику
type MediaService interface {
	RequestUpload(ctx context.Context, userID string, severity float64, mime string, size int64) (*models.UploadTicket, error)
	DownloadURL(ctx context.Context, key string) (string, error)
	Requirement(severity float64) *models.MediaRequirement
}

type mediaService struct {
	storage MediaStorage
	limits  media.Limits
	logger  *logrus.Logger
}

func NewMediaService(storage MediaStorage, logger *logrus.Logger, cfg *config.Config) MediaService {
	return &mediaService{
		storage: storage,
		limits:  limitsFrom(cfg.MaxImageBytes, cfg.MaxVideoBytes),
		logger:  logger,
	}
}

// RequestUpload проверяет заявленный файл и выдает подписанную ссылку для PUT
func (s *mediaService) RequestUpload(ctx context.Context, userID string, severity float64, mime string, size int64) (*models.UploadTicket, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "media",
		"method":   "RequestUpload",
		"user_id":  userID,
		"severity": severity,
		"mime":     mime,
		"size":     size,
	})
	log.Info("Upload URL requested")

	kind, err := media.KindFromMIME(mime)
	if err != nil {
		return nil, fmt.Errorf("service: could not request upload: %w", err)
	}
	if err := rejected(media.Validate(severity, &media.Attachment{Kind: kind, Size: size}, s.limits)); err != nil {
		log.WithError(err).Info("Upload rejected by media policy")
		return nil, fmt.Errorf("service: could not request upload: %w", err)
	}

	ticket, err := s.storage.PresignUpload(ctx, userID, string(kind), media.Extension(mime))
	if err != nil {
		log.WithError(err).Error("Failed to presign upload")
		return nil, fmt.Errorf("service: could not request upload: %w", err)
	}

	log.WithField("key", ticket.Key).Info("Upload URL issued")
	return ticket, nil
}

// DownloadURL возвращает временную ссылку на чтение медиа
func (s *mediaService) DownloadURL(ctx context.Context, key string) (string, error) {
	u, err := s.storage.PresignDownload(ctx, key)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "media",
			"method":  "DownloadURL",
			"key":     key,
		}).WithError(err).Error("Failed to presign download")
		return "", fmt.Errorf("service: could not presign download: %w", err)
	}
	return u, nil
}

func (s *mediaService) Requirement(severity float64) *models.MediaRequirement {
	kind := media.RequiredKind(severity)
	return &models.MediaRequirement{
		Severity: severity,
		Kind:     string(kind),
		MaxBytes: s.limits.Ceiling(kind),
	}
}
