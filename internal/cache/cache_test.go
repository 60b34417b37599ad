package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	Line string `json:"line"`
}

func TestCache_PutGet(t *testing.T) {
	ctx := context.Background()
	c := New[address](NewMemoryStore())

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "k", address{Line: "Tverskaya 1"}))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Tverskaya 1", got.Line)

	require.NoError(t, c.Put(ctx, "k", address{Line: "Arbat 2"}))
	got, _, _ = c.Get(ctx, "k")
	assert.Equal(t, "Arbat 2", got.Line)
}

func TestCache_DecodeError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bad", []byte("{not json")))

	_, ok, err := New[address](store).Get(ctx, "bad")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "failed to decode cached bad")
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("boom")
}

func (failingStore) Put(context.Context, string, []byte) error { return errors.New("boom") }

func TestCache_StoreErrorsPropagate(t *testing.T) {
	c := New[address](failingStore{})
	_, _, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, c.Put(context.Background(), "k", address{}))
}

func TestAddressKey_Rounds(t *testing.T) {
	assert.Equal(t, "addr:55.7512:37.6184", AddressKey(55.75123, 37.61841))
	assert.Equal(t, AddressKey(55.751201, 37.618399), AddressKey(55.751249, 37.61844))
}
