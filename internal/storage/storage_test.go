package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectClient struct {
	objects map[string]minio.ObjectInfo
}

func (f *fakeObjectClient) PresignedPutObject(_ context.Context, bucket, object string, expires time.Duration) (*url.URL, error) {
	return url.Parse("https://s3.local/" + bucket + "/" + object + "?X-Amz-Expires=" + expires.String())
}

func (f *fakeObjectClient) PresignedGetObject(_ context.Context, bucket, object string, _ time.Duration, _ url.Values) (*url.URL, error) {
	return url.Parse("https://s3.local/" + bucket + "/" + object + "?sig=get")
}

func (f *fakeObjectClient) StatObject(_ context.Context, _ string, object string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	info, ok := f.objects[object]
	if !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	}
	return info, nil
}

func newTestStorage() (*MediaStorage, *fakeObjectClient) {
	client := &fakeObjectClient{objects: map[string]minio.ObjectInfo{}}
	s := NewMediaStorage(client, "incident-media", 15*time.Minute)
	s.now = func() time.Time { return time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC) }
	return s, client
}

func TestPresignUpload(t *testing.T) {
	s, _ := newTestStorage()

	ticket, err := s.PresignUpload(context.Background(), "user-1", "video", "mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ticket.Key, "media/user-1/2025/04/02/"))
	assert.True(t, strings.HasSuffix(ticket.Key, ".mp4"))
	assert.Contains(t, ticket.UploadURL, ticket.Key)
	assert.Equal(t, "video", ticket.Kind)
	assert.Equal(t, time.Date(2025, 4, 2, 10, 15, 0, 0, time.UTC), ticket.ExpiresAt)
	assert.True(t, OwnsKey("user-1", ticket.Key))
	assert.False(t, OwnsKey("user-2", ticket.Key))
}

func TestOwnsKey_RejectsTraversal(t *testing.T) {
	assert.False(t, OwnsKey("u", "media/u/../v/x.png"))
	assert.False(t, OwnsKey("u", "other/u/x.png"))
}

func TestPresignDownload(t *testing.T) {
	s, _ := newTestStorage()

	link, err := s.PresignDownload(context.Background(), "media/u/2025/04/02/a.png")
	require.NoError(t, err)
	assert.Contains(t, link, "sig=get")

	_, err = s.PresignDownload(context.Background(), "secrets/key")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestStat(t *testing.T) {
	s, client := newTestStorage()
	client.objects["media/u/a.png"] = minio.ObjectInfo{Key: "media/u/a.png", Size: 1234, ContentType: "image/png"}

	obj, err := s.Stat(context.Background(), "media/u/a.png")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), obj.Size)
	assert.Equal(t, "image/png", obj.ContentType)

	_, err = s.Stat(context.Background(), "media/u/missing.png")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
