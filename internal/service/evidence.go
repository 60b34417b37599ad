package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/media"
	"github.com/shenikar/incident_map/internal/metrics"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/shenikar/incident_map/internal/storage"
)

// MediaStorage определяет контракт объектного хранилища медиа
type MediaStorage interface {
	PresignUpload(ctx context.Context, ownerID, kind, ext string) (*models.UploadTicket, error)
	PresignDownload(ctx context.Context, key string) (string, error)
	Stat(ctx context.Context, key string) (*models.MediaObject, error)
}

// evidenceChecker проверяет уже загруженный файл по политике медиа.
// Размер и тип берутся из хранилища, а не из запроса клиента.
type evidenceChecker struct {
	storage MediaStorage
	limits  media.Limits
}

func (e *evidenceChecker) check(ctx context.Context, ownerID string, severity float64, key string) error {
	if key == "" {
		return rejected(media.Validate(severity, nil, e.limits))
	}
	if !storage.OwnsKey(ownerID, key) {
		return apperr.Forbidden("media %s does not belong to user", key)
	}

	obj, err := e.storage.Stat(ctx, key)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Validation("media %s has not been uploaded", key)
		}
		return fmt.Errorf("could not stat media: %w", err)
	}

	// Тип определяется только по сохраненному MIME-типу, расширение ключа не учитывается
	kind, err := media.KindFromMIME(obj.ContentType)
	if err != nil {
		return apperr.Validation("media %s has unsupported content type %q", key, obj.ContentType)
	}
	return rejected(media.Validate(severity, &media.Attachment{Kind: kind, Size: obj.Size}, e.limits))
}

func rejected(err error) error {
	var perr *media.PolicyError
	if errors.As(err, &perr) {
		metrics.MediaPolicyRejections.WithLabelValues(string(perr.Reason)).Inc()
	}
	return err
}

func limitsFrom(maxImage, maxVideo int64) media.Limits {
	return media.Limits{MaxImageBytes: maxImage, MaxVideoBytes: maxVideo}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
