// Package storage выдает подписанные ссылки на медиа в S3-совместимом хранилище
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/models"
)

const keyPrefix = "media/"

// ObjectClient - подмножество методов minio.Client, которое нужно хранилищу
type ObjectClient interface {
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

type MediaStorage struct {
	client ObjectClient
	bucket string
	ttl    time.Duration
	now    func() time.Time
}

func NewMediaStorage(client ObjectClient, bucket string, ttl time.Duration) *MediaStorage {
	return &MediaStorage{
		client: client,
		bucket: bucket,
		ttl:    ttl,
		now:    time.Now,
	}
}

// ObjectKey строит ключ объекта: media/<owner>/<yyyy/mm/dd>/<uuid>.<ext>
func (s *MediaStorage) ObjectKey(ownerID, ext string) string {
	return fmt.Sprintf("%s%s/%s/%s.%s", keyPrefix, url.PathEscape(ownerID), s.now().UTC().Format("2006/01/02"), uuid.New().String(), ext)
}

// OwnsKey проверяет, что ключ был выдан этому пользователю
func OwnsKey(ownerID, key string) bool {
	return strings.HasPrefix(key, keyPrefix+url.PathEscape(ownerID)+"/") && !strings.Contains(key, "..")
}

// PresignUpload возвращает ссылку для PUT-загрузки нового объекта
func (s *MediaStorage) PresignUpload(ctx context.Context, ownerID, kind, ext string) (*models.UploadTicket, error) {
	key := s.ObjectKey(ownerID, ext)
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}
	return &models.UploadTicket{
		Key:       key,
		UploadURL: u.String(),
		Kind:      kind,
		ExpiresAt: s.now().Add(s.ttl),
	}, nil
}

// PresignDownload возвращает временную ссылку на чтение объекта
func (s *MediaStorage) PresignDownload(ctx context.Context, key string) (string, error) {
	if !strings.HasPrefix(key, keyPrefix) {
		return "", apperr.Validation("unknown media key %q", key)
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign download for %s: %w", key, err)
	}
	return u.String(), nil
}

// Stat возвращает фактический размер и тип загруженного объекта
func (s *MediaStorage) Stat(ctx context.Context, key string) (*models.MediaObject, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, apperr.NotFound("media %s was not uploaded", key)
		}
		return nil, fmt.Errorf("failed to stat media %s: %w", key, err)
	}
	return &models.MediaObject{
		Key:         key,
		Size:        info.Size,
		ContentType: info.ContentType,
	}, nil
}
