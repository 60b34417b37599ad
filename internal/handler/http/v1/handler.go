package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/incident_map/internal/auth"
	"github.com/shenikar/incident_map/internal/config"
	"github.com/shenikar/incident_map/internal/service"
	"github.com/sirupsen/logrus"
)

// Services - сервисы, которые обслуживает HTTP API
type Services struct {
	Incidents     service.IncidentService
	Updates       service.UpdateService
	Media         service.MediaService
	SOS           service.SOSService
	Subscriptions service.SubscriptionService
	Addresses     service.AddressService
}

// LiveServer поднимает websocket-соединение живой карты
type LiveServer interface {
	ServeWS(c *gin.Context)
}

type Handler struct {
	incidentService     service.IncidentService
	updateService       service.UpdateService
	mediaService        service.MediaService
	sosService          service.SOSService
	subscriptionService service.SubscriptionService
	addressService      service.AddressService

	verifier   *auth.Verifier
	live       LiveServer
	sosLimiter *userRateLimiter
	logger     *logrus.Logger
	validate   *validator.Validate
	cfg        *config.Config
}

func NewHandler(services Services, verifier *auth.Verifier, live LiveServer, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService:     services.Incidents,
		updateService:       services.Updates,
		mediaService:        services.Media,
		sosService:          services.SOS,
		subscriptionService: services.Subscriptions,
		addressService:      services.Addresses,
		verifier:            verifier,
		live:                live,
		sosLimiter:          newUserRateLimiter(cfg.SOSRatePerMinute),
		logger:              logger,
		validate:            validator.New(),
		cfg:                 cfg,
	}
}

// bindJSON разбирает и валидирует тело запроса, при ошибке сам отвечает 400
func (h *Handler) bindJSON(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		badRequest(c, "invalid request body")
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		badRequest(c, err.Error())
		return false
	}
	return true
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
