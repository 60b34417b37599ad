package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_map/internal/auth"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Открытые маршруты
	api.GET("/system/health", h.healthCheck)
	api.GET("/media/requirement", h.mediaRequirement)
	if h.live != nil {
		api.GET("/live", h.live.ServeWS)
	}

	// Маршруты для пользователей с токеном провайдера
	authed := api.Group("", auth.BearerAuthMiddleware(h.verifier, h.logger))

	mediaGroup := authed.Group("/media")
	{
		mediaGroup.POST("/upload-url", h.requestUploadURL)
		mediaGroup.GET("/download-url", h.downloadURL)
	}

	incidents := authed.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.DELETE("/:id", h.deleteIncident)
		incidents.POST("/:id/updates", h.postUpdate)
		incidents.DELETE("/:id/updates/:updateId", h.deleteUpdate)
	}
	authed.GET("/feed", h.feed)

	subscriptions := authed.Group("/subscriptions")
	{
		subscriptions.GET("", h.listSubscriptions)
		subscriptions.POST("", h.subscribe)
		subscriptions.DELETE("/:tag", h.unsubscribe)
	}

	sos := authed.Group("/sos")
	{
		sos.POST("", h.sosLimiter.middleware(), h.triggerSOS)
		sos.GET("/history", h.sosHistory)
		sos.GET("/recipients", h.listRecipients)
		sos.POST("/recipients", h.addRecipient)
		sos.DELETE("/recipients/:id", h.removeRecipient)
	}

	authed.GET("/geo/address", h.lookupAddress)

	// Служебные маршруты по API-ключу
	admin := api.Group("/admin", APIKeyAuthMiddleware(h.cfg, h.logger))
	admin.GET("/stats", h.getStats)
}
