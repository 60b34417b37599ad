package auth

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestVerify_Success(t *testing.T) {
	token, err := Issue(testSecret, "idp", "user-1", "u@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := NewVerifier(testSecret, "idp").Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "u@example.com", claims.Email)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := Issue("other", "", "user-1", "", time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier(testSecret, "").Verify(token)
	assert.True(t, errors.Is(err, apperr.ErrAuth))
}

func TestVerify_Expired(t *testing.T) {
	token, err := Issue(testSecret, "", "user-1", "", -time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier(testSecret, "").Verify(token)
	assert.ErrorContains(t, err, "token expired")
}

func TestVerify_WrongIssuer(t *testing.T) {
	token, err := Issue(testSecret, "someone-else", "user-1", "", time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier(testSecret, "idp").Verify(token)
	assert.True(t, errors.Is(err, apperr.ErrAuth))
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewVerifier(testSecret, "").Verify(token)
	assert.Error(t, err)
}

func TestVerify_MissingSubject(t *testing.T) {
	token, err := Issue(testSecret, "", "", "", time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier(testSecret, "").Verify(token)
	assert.ErrorContains(t, err, "no subject")
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})

	router := gin.New()
	router.Use(BearerAuthMiddleware(NewVerifier(testSecret, ""), log))
	router.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return router
}

func TestBearerAuthMiddleware(t *testing.T) {
	router := newTestRouter()
	token, err := Issue(testSecret, "", "user-42", "", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", w.Body.String())
}

func TestBearerAuthMiddleware_Missing(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "bearer token required")
}

func TestBearerAuthMiddleware_Invalid(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}
