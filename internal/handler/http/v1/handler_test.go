package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/auth"
	"github.com/shenikar/incident_map/internal/config"
	"github.com/shenikar/incident_map/internal/media"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/shenikar/incident_map/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSecret = "test-secret"
	testUser   = "user-1"
)

type testMocks struct {
	incidents     *mocks.MockIncidentService
	updates       *mocks.MockUpdateService
	media         *mocks.MockMediaService
	sos           *mocks.MockSOSService
	subscriptions *mocks.MockSubscriptionService
	addresses     *mocks.MockAddressService
}

// newTestHandler создает Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := &testMocks{
		incidents:     mocks.NewMockIncidentService(ctrl),
		updates:       mocks.NewMockUpdateService(ctrl),
		media:         mocks.NewMockMediaService(ctrl),
		sos:           mocks.NewMockSOSService(ctrl),
		subscriptions: mocks.NewMockSubscriptionService(ctrl),
		addresses:     mocks.NewMockAddressService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:          []string{"test-api-key"},
		JWTSecret:        testSecret,
		SOSRatePerMinute: 2,
	}

	handler := NewHandler(Services{
		Incidents:     m.incidents,
		Updates:       m.updates,
		Media:         m.media,
		SOS:           m.sos,
		Subscriptions: m.subscriptions,
		Addresses:     m.addresses,
	}, auth.NewVerifier(testSecret, ""), nil, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return m, router
}

func bearer(t *testing.T, userID string) map[string]string {
	t.Helper()
	token, err := auth.Issue(testSecret, "", userID, userID+"@example.com", time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	_, router := newTestHandler(t)
	w := makeRequest(router, http.MethodGet, "/api/v1/system/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestBearerRequired(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/feed", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, http.MethodGet, "/api/v1/feed", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "auth", decodeError(t, w).Type)
}

func TestCreateIncident_Success(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID := uuid.New()

	// Ожидания: тяжесть из строки разобрана, создатель взят из токена
	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			assert.Equal(t, testUser, inc.CreatorID)
			assert.Equal(t, 7.0, inc.Severity)
			assert.Equal(t, "media/user-1/2025/01/01/a.mp4", inc.MediaURL)
			inc.ID = incidentID
			inc.Hashtags = []string{"fire"}
			return nil
		})

	body := map[string]any{
		"title":     "Пожар на складе",
		"latitude":  55.75,
		"longitude": 37.61,
		"severity":  "7",
		"media_key": "media/user-1/2025/01/01/a.mp4",
	}
	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", jsonBody(t, body), bearer(t, testUser))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, 7.0, resp.AggregateSeverity)
	assert.Equal(t, "video", resp.MediaKind)
	assert.Equal(t, []string{"fire"}, resp.Hashtags)
}

func TestCreateIncident_InvalidJSON(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", bytes.NewBufferString(`{"title": "x"`), bearer(t, testUser))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateIncident_ValidationError(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Times(0)

	body := map[string]any{"title": "Пожар", "latitude": 120.0, "longitude": 10.0, "severity": 3}
	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", jsonBody(t, body), bearer(t, testUser))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decodeError(t, w).Type)
}

func TestCreateIncident_PolicyRejected(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: could not create incident: %w",
			&media.PolicyError{Reason: media.ViolationMismatch, Required: media.KindVideo, Supplied: media.KindImage}))

	body := map[string]any{"title": "Пожар", "latitude": 1.0, "longitude": 1.0, "severity": 8, "media_key": "media/user-1/x.jpg"}
	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", jsonBody(t, body), bearer(t, testUser))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "policy", resp.Type)
	assert.Equal(t, "video required, image supplied", resp.Error)
}

func TestCreateIncident_InternalErrorHidden(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: could not create incident: %w", errors.New("dial tcp 10.0.0.5:5432: connection refused")))

	body := map[string]any{"title": "Пожар", "latitude": 1.0, "longitude": 1.0, "severity": 2, "media_key": "media/user-1/x.jpg"}
	w := makeRequest(router, http.MethodPost, "/api/v1/incidents", jsonBody(t, body), bearer(t, testUser))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "internal", resp.Type)
	assert.Equal(t, "internal server error", resp.Error)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestListIncidents(t *testing.T) {
	m, router := newTestHandler(t)

	m.incidents.EXPECT().
		ListNearby(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.NearbyFilter) ([]*models.IncidentView, error) {
			assert.Equal(t, 55.7, f.Latitude)
			assert.Equal(t, 37.6, f.Longitude)
			assert.Equal(t, 1000, f.RadiusMeters)
			assert.Equal(t, 6.5, f.MinSeverity)
			assert.Equal(t, "flood", f.Hashtag)
			assert.False(t, f.Since.IsZero())
			assert.Equal(t, 2, f.Page)
			assert.Equal(t, 20, f.PageSize)
			return []*models.IncidentView{{
				Incident:          &models.Incident{ID: uuid.New(), Title: "Потоп", MediaURL: "a.mov"},
				Updates:           []*models.Update{{ID: uuid.New(), Kind: models.UpdateKindUpdate, Severity: 9}},
				AggregateSeverity: 7.43,
			}}, nil
		})

	url := "/api/v1/incidents?lat=55.7&lon=37.6&radius=1000&min_severity=6.5&hashtag=flood&since_hours=24&page=2"
	w := makeRequest(router, http.MethodGet, url, nil, bearer(t, testUser))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 7.43, resp[0].AggregateSeverity)
	assert.Len(t, resp[0].Updates, 1)
	assert.Equal(t, "video", resp[0].MediaKind)
}

func TestListIncidents_MissingCoordinates(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().ListNearby(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/v1/incidents?lat=55.7", nil, bearer(t, testUser))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetIncident(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		m, router := newTestHandler(t)
		id := uuid.New()
		m.incidents.EXPECT().GetIncident(gomock.Any(), id).Return(&models.IncidentView{
			Incident:          &models.Incident{ID: id, Title: "ДТП"},
			AggregateSeverity: 3.71,
		}, nil)

		w := makeRequest(router, http.MethodGet, "/api/v1/incidents/"+id.String(), nil, bearer(t, testUser))
		require.Equal(t, http.StatusOK, w.Code)
		var resp IncidentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3.71, resp.AggregateSeverity)
		assert.Equal(t, []string{}, resp.Hashtags)
	})

	t.Run("not found", func(t *testing.T) {
		m, router := newTestHandler(t)
		id := uuid.New()
		m.incidents.EXPECT().GetIncident(gomock.Any(), id).Return(nil, apperr.NotFound("incident %s not found", id))

		w := makeRequest(router, http.MethodGet, "/api/v1/incidents/"+id.String(), nil, bearer(t, testUser))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decodeError(t, w).Type)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, router := newTestHandler(t)
		w := makeRequest(router, http.MethodGet, "/api/v1/incidents/not-a-uuid", nil, bearer(t, testUser))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteIncident_Forbidden(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	m.incidents.EXPECT().DeleteIncident(gomock.Any(), testUser, id).Return(apperr.Forbidden("only the creator can delete an incident"))

	w := makeRequest(router, http.MethodDelete, "/api/v1/incidents/"+id.String(), nil, bearer(t, testUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "only the creator can delete an incident", decodeError(t, w).Error)
}

func TestPostUpdate(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID := uuid.New()

	m.updates.EXPECT().
		PostUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.Update) error {
			assert.Equal(t, incidentID, u.IncidentID)
			assert.Equal(t, testUser, u.AuthorID)
			assert.Equal(t, models.UpdateKindDisprove, u.Kind)
			u.ID = uuid.New()
			return nil
		})

	body := PostUpdateRequest{Kind: "disprove", Severity: 2, Text: "Все спокойно", MediaKey: "media/user-1/p.jpg"}
	w := makeRequest(router, http.MethodPost, "/api/v1/incidents/"+incidentID.String()+"/updates", jsonBody(t, body), bearer(t, testUser))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp UpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "disprove", resp.Kind)
	assert.Equal(t, "image", resp.MediaKind)
}

func TestPostUpdate_InvalidKind(t *testing.T) {
	m, router := newTestHandler(t)
	m.updates.EXPECT().PostUpdate(gomock.Any(), gomock.Any()).Times(0)

	body := PostUpdateRequest{Kind: "retract", Severity: 2}
	w := makeRequest(router, http.MethodPost, "/api/v1/incidents/"+uuid.NewString()+"/updates", jsonBody(t, body), bearer(t, testUser))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUpdate(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID, updateID := uuid.New(), uuid.New()
	m.updates.EXPECT().DeleteUpdate(gomock.Any(), testUser, incidentID, updateID).Return(nil)

	url := fmt.Sprintf("/api/v1/incidents/%s/updates/%s", incidentID, updateID)
	w := makeRequest(router, http.MethodDelete, url, nil, bearer(t, testUser))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestFeed(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().Feed(gomock.Any(), testUser, 1, 20).Return([]*models.IncidentView{}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/feed", nil, bearer(t, testUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRequestUploadURL(t *testing.T) {
	m, router := newTestHandler(t)
	expires := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.media.EXPECT().
		RequestUpload(gomock.Any(), testUser, 8.0, "video/mp4", int64(1024)).
		Return(&models.UploadTicket{Key: "media/user-1/k.mp4", UploadURL: "https://s3/put", Kind: "video", ExpiresAt: expires}, nil)

	body := UploadURLRequest{Severity: 8, ContentType: "video/mp4", Size: 1024}
	w := makeRequest(router, http.MethodPost, "/api/v1/media/upload-url", jsonBody(t, body), bearer(t, testUser))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp UploadURLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "media/user-1/k.mp4", resp.Key)
	assert.Equal(t, "video", resp.Kind)
	assert.True(t, expires.Equal(resp.ExpiresAt))
}

func TestDownloadURL(t *testing.T) {
	m, router := newTestHandler(t)
	m.media.EXPECT().DownloadURL(gomock.Any(), "media/u/a.webm").Return("https://s3/get?sig=1", nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/media/download-url?key=media/u/a.webm", nil, bearer(t, testUser))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://s3/get?sig=1","kind":"video"}`, w.Body.String())

	w = makeRequest(router, http.MethodGet, "/api/v1/media/download-url", nil, bearer(t, testUser))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMediaRequirement_Public(t *testing.T) {
	m, router := newTestHandler(t)
	m.media.EXPECT().Requirement(5.0).Return(&models.MediaRequirement{Severity: 5, Kind: "image", MaxBytes: 4 << 20})

	w := makeRequest(router, http.MethodGet, "/api/v1/media/requirement?severity=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp MediaRequirementResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "image", resp.Kind)
	assert.Equal(t, 4.0, resp.MaxMB)

	w = makeRequest(router, http.MethodGet, "/api/v1/media/requirement?severity=high", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriggerSOS(t *testing.T) {
	m, router := newTestHandler(t)
	now := time.Now().UTC()
	m.sos.EXPECT().
		Trigger(gomock.Any(), gomock.Any(), testUser+"@example.com").
		DoAndReturn(func(_ context.Context, e *models.SOSEvent, _ string) (int, error) {
			assert.Equal(t, testUser, e.UserID)
			e.ID = 42
			e.CreatedAt = now
			return 3, nil
		})

	body := SOSRequest{Latitude: 55.7, Longitude: 37.6, Message: "Помогите"}
	w := makeRequest(router, http.MethodPost, "/api/v1/sos", jsonBody(t, body), bearer(t, testUser))

	require.Equal(t, http.StatusAccepted, w.Code)
	var resp SOSResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.EventID)
	assert.Equal(t, 3, resp.Recipients)
}

func TestTriggerSOS_RateLimitedPerUser(t *testing.T) {
	m, router := newTestHandler(t)
	m.sos.EXPECT().Trigger(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil).Times(3)

	body := SOSRequest{Latitude: 1, Longitude: 1}
	for i := 0; i < 2; i++ {
		w := makeRequest(router, http.MethodPost, "/api/v1/sos", jsonBody(t, body), bearer(t, testUser))
		require.Equal(t, http.StatusAccepted, w.Code)
	}

	w := makeRequest(router, http.MethodPost, "/api/v1/sos", jsonBody(t, body), bearer(t, testUser))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Лимит другого пользователя не затронут
	w = makeRequest(router, http.MethodPost, "/api/v1/sos", jsonBody(t, body), bearer(t, "user-2"))
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestTriggerSOS_NoRecipients(t *testing.T) {
	m, router := newTestHandler(t)
	m.sos.EXPECT().Trigger(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, apperr.Validation("add at least one SOS recipient first"))

	w := makeRequest(router, http.MethodPost, "/api/v1/sos", jsonBody(t, SOSRequest{Latitude: 1, Longitude: 1}), bearer(t, testUser))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "add at least one SOS recipient first", decodeError(t, w).Error)
}

func TestRecipients(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()

	m.sos.EXPECT().
		AddRecipient(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Recipient) error {
			assert.Equal(t, testUser, r.OwnerID)
			r.ID = id
			return nil
		})
	w := makeRequest(router, http.MethodPost, "/api/v1/sos/recipients",
		jsonBody(t, RecipientRequest{Name: "Мама", Phone: "+79991234567"}), bearer(t, testUser))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), id.String())

	w = makeRequest(router, http.MethodPost, "/api/v1/sos/recipients",
		jsonBody(t, RecipientRequest{Name: "Мама", Phone: "89991234567"}), bearer(t, testUser))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m.sos.EXPECT().ListRecipients(gomock.Any(), testUser).Return([]*models.Recipient{{ID: id, Name: "Мама"}}, nil)
	w = makeRequest(router, http.MethodGet, "/api/v1/sos/recipients", nil, bearer(t, testUser))
	require.Equal(t, http.StatusOK, w.Code)
	var list []RecipientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	m.sos.EXPECT().RemoveRecipient(gomock.Any(), testUser, id).Return(nil)
	w = makeRequest(router, http.MethodDelete, "/api/v1/sos/recipients/"+id.String(), nil, bearer(t, testUser))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSOSHistory(t *testing.T) {
	m, router := newTestHandler(t)
	m.sos.EXPECT().History(gomock.Any(), testUser, 10).Return([]*models.SOSEvent{{ID: 1}, {ID: 2}}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/sos/history?limit=10", nil, bearer(t, testUser))
	require.Equal(t, http.StatusOK, w.Code)
	var resp []SOSEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGetStats(t *testing.T) {
	m, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/admin/stats", nil, bearer(t, testUser))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, http.MethodGet, "/api/v1/admin/stats", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	m.sos.EXPECT().Stats(gomock.Any()).Return(&models.SOSStats{WindowMinutes: 60, Events: 7, Users: 4}, nil)
	w = makeRequest(router, http.MethodGet, "/api/v1/admin/stats", nil, map[string]string{"X-API-Key": "test-api-key"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"window_minutes":60,"sos_events":7,"user_count":4}`, w.Body.String())
}

func TestSubscriptions(t *testing.T) {
	m, router := newTestHandler(t)

	m.subscriptions.EXPECT().Subscribe(gomock.Any(), testUser, "#Пожар").Return("пожар", nil)
	w := makeRequest(router, http.MethodPost, "/api/v1/subscriptions", jsonBody(t, SubscriptionRequest{Hashtag: "#Пожар"}), bearer(t, testUser))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"hashtag":"пожар"}`, w.Body.String())

	m.subscriptions.EXPECT().List(gomock.Any(), testUser).Return([]string{"пожар"}, nil)
	w = makeRequest(router, http.MethodGet, "/api/v1/subscriptions", nil, bearer(t, testUser))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"hashtags":["пожар"]}`, w.Body.String())

	m.subscriptions.EXPECT().Unsubscribe(gomock.Any(), testUser, "flood").Return(nil)
	w = makeRequest(router, http.MethodDelete, "/api/v1/subscriptions/flood", nil, bearer(t, testUser))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLookupAddress(t *testing.T) {
	m, router := newTestHandler(t)

	m.addresses.EXPECT().Lookup(gomock.Any(), 55.7558, 37.6173).Return("Красная площадь, 1", true, nil)
	w := makeRequest(router, http.MethodGet, "/api/v1/geo/address?lat=55.7558&lon=37.6173", nil, bearer(t, testUser))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Красная площадь, 1")

	m.addresses.EXPECT().Lookup(gomock.Any(), 1.0, 2.0).Return("", false, nil)
	w = makeRequest(router, http.MethodGet, "/api/v1/geo/address?lat=1&lon=2", nil, bearer(t, testUser))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
