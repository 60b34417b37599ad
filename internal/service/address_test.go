package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressService_RememberThenLookup(t *testing.T) {
	svc := NewAddressService(cache.NewMemoryStore(), testLogger())
	ctx := context.Background()

	_, ok, err := svc.Lookup(ctx, 55.7512, 37.6184)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Remember(ctx, 55.7512, 37.6184, "Red Square"))
	require.NoError(t, svc.Remember(ctx, 55.75121, 37.61841, "Red Square, 1"))

	addr, ok, err := svc.Lookup(ctx, 55.75119, 37.61838)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Red Square, 1", addr)
}

func TestAddressService_Validation(t *testing.T) {
	svc := NewAddressService(cache.NewMemoryStore(), testLogger())
	ctx := context.Background()

	_, _, err := svc.Lookup(ctx, 91, 0)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	err = svc.Remember(ctx, 10, 10, "   ")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
