package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSubscribe_NormalizesTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSubscriptionRepository(ctrl)
	svc := NewSubscriptionService(repo, testLogger())
	ctx := context.Background()

	repo.EXPECT().Subscribe(ctx, testUser, "flood").Return(nil)

	tag, err := svc.Subscribe(ctx, testUser, " #Flood ")
	require.NoError(t, err)
	assert.Equal(t, "flood", tag)
}

func TestSubscribe_InvalidTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewSubscriptionService(mocks.NewMockSubscriptionRepository(ctrl), testLogger())

	_, err := svc.Subscribe(context.Background(), testUser, "#no spaces")

	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestListSubscriptions_NeverNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSubscriptionRepository(ctrl)
	svc := NewSubscriptionService(repo, testLogger())
	ctx := context.Background()

	repo.EXPECT().ListHashtags(ctx, testUser).Return(nil, nil)

	tags, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestUnsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSubscriptionRepository(ctrl)
	svc := NewSubscriptionService(repo, testLogger())
	ctx := context.Background()

	repo.EXPECT().Unsubscribe(ctx, testUser, "fire").Return(nil)

	assert.NoError(t, svc.Unsubscribe(ctx, testUser, "FIRE"))
}
