package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/incident_map/internal/auth"
	"github.com/shenikar/incident_map/internal/models"
)

// @Summary Add an SOS recipient
// @Tags SOS
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipient body RecipientRequest true "Recipient"
// @Success 201 {object} RecipientResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /sos/recipients [post]
func (h *Handler) addRecipient(c *gin.Context) {
	var input RecipientRequest
	log := h.logger.WithField("method", "addRecipient")

	if !h.bindJSON(c, log, &input) {
		return
	}

	recipient := &models.Recipient{
		OwnerID: auth.UserID(c),
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
	}
	if err := h.sosService.AddRecipient(c.Request.Context(), recipient); err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelsToRecipientResponses([]*models.Recipient{recipient})[0])
}

// @Summary List SOS recipients
// @Tags SOS
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RecipientResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /sos/recipients [get]
func (h *Handler) listRecipients(c *gin.Context) {
	log := h.logger.WithField("method", "listRecipients")

	recipients, err := h.sosService.ListRecipients(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToRecipientResponses(recipients))
}

// @Summary Remove an SOS recipient
// @Tags SOS
// @Security BearerAuth
// @Param id path string true "Recipient ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid recipient ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Recipient not found"
// @Router /sos/recipients/{id} [delete]
func (h *Handler) removeRecipient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid recipient ID")
		return
	}
	log := h.logger.WithField("method", "removeRecipient").WithField("id", id)

	if err := h.sosService.RemoveRecipient(c.Request.Context(), auth.UserID(c), id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Trigger SOS
// @Description Saves the event and queues an alert to every registered recipient. Rate limited per user.
// @Tags SOS
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sos body SOSRequest true "Location and message"
// @Success 202 {object} SOSResponse
// @Failure 400 {object} ErrorResponse "No recipients or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /sos [post]
func (h *Handler) triggerSOS(c *gin.Context) {
	var input SOSRequest
	log := h.logger.WithField("method", "triggerSOS")

	if !h.bindJSON(c, log, &input) {
		return
	}

	event := &models.SOSEvent{
		UserID:    auth.UserID(c),
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Message:   input.Message,
	}
	n, err := h.sosService.Trigger(c.Request.Context(), event, auth.Email(c))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusAccepted, SOSResponse{EventID: event.ID, Recipients: n, CreatedAt: event.CreatedAt})
}

// @Summary SOS history
// @Tags SOS
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max events" default(50)
// @Success 200 {array} SOSEventResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /sos/history [get]
func (h *Handler) sosHistory(c *gin.Context) {
	log := h.logger.WithField("method", "sosHistory")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	events, err := h.sosService.History(c.Request.Context(), auth.UserID(c), limit)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToSOSEventResponses(events))
}

// @Summary Get SOS statistics
// @Description Number of SOS events and distinct users in the last STATS_TIME_WINDOW_MINUTES. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.sosService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, StatsResponse{
		WindowMinutes: stats.WindowMinutes,
		SOSEvents:     stats.Events,
		UserCount:     stats.Users,
	})
}
