package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_map/internal/config"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/shenikar/incident_map/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(url string) *WebhookWorker {
	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	w := NewWebhookWorker(nil, logger.Discard(), cfg)
	w.sleep = func(context.Context, time.Duration) {}
	return w
}

func testEvent() (SOSAlertEvent, string) {
	event := SOSAlertEvent{
		EventID:   7,
		UserID:    "user-1",
		Latitude:  55.75,
		Longitude: 37.61,
		Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Recipients: []*models.Recipient{
			{ID: uuid.New(), OwnerID: "user-1", Name: "Mom", Phone: "+70000000000"},
		},
	}
	payload, _ := json.Marshal(event)
	return event, string(payload)
}

func TestProcessEvent_DeliversSignedPayload(t *testing.T) {
	event, payload := testEvent()
	var gotBody, gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotSig = r.Header.Get(signatureHeader)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	ok := newTestWorker(srv.URL).processEvent(context.Background(), event, payload)

	require.True(t, ok)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, generateHMACSHA256(payload, "s3cret"), gotSig)
}

func TestProcessEvent_RetriesThenSucceeds(t *testing.T) {
	event, payload := testEvent()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ok := newTestWorker(srv.URL).processEvent(context.Background(), event, payload)

	assert.True(t, ok)
	assert.Equal(t, int32(3), calls.Load())
}

func TestProcessEvent_GivesUpAfterMaxRetries(t *testing.T) {
	event, payload := testEvent()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ok := newTestWorker(srv.URL).processEvent(context.Background(), event, payload)

	assert.False(t, ok)
	assert.Equal(t, int32(3), calls.Load())
}

func TestProcessEvent_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	event, payload := testEvent()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	w := newTestWorker(srv.URL)
	for i := 0; i < 5; i++ {
		assert.False(t, w.processEvent(context.Background(), event, payload))
	}
	before := calls.Load()

	assert.False(t, w.processEvent(context.Background(), event, payload))
	assert.Equal(t, before, calls.Load(), "open breaker must not hit the gateway")
}

func TestProcessEvent_NoURLSkips(t *testing.T) {
	event, payload := testEvent()
	assert.False(t, newTestWorker("").processEvent(context.Background(), event, payload))
}

func TestGenerateHMACSHA256(t *testing.T) {
	got := generateHMACSHA256("The quick brown fox jumps over the lazy dog", "key")
	assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", got)
}
