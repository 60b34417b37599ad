package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/sirupsen/logrus"
)

// ErrorResponse - тело ответа с ошибкой
// @Description Ошибка с тегом вида
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

func statusFor(kind apperr.ErrorKind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindPolicy:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError переводит ошибку сервиса в HTTP-ответ по ее виду
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	kind := apperr.Kind(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
		kind = apperr.KindInternal
	} else {
		log.WithError(err).Warn("Request rejected")
	}
	c.JSON(status, ErrorResponse{Error: apperr.Public(err), Type: string(kind)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Type: string(apperr.KindValidation)})
}
