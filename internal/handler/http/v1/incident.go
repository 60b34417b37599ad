package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/incident_map/internal/auth"
	"github.com/shenikar/incident_map/internal/models"
)

// @Summary Create a new incident
// @Description Create an incident. The evidence must already be uploaded via /media/upload-url: severity 5 or below needs an image, above 5 needs a video.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid request body, validation or media policy error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Media belongs to another user"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if !h.bindJSON(c, log, &input) {
		return
	}

	model := DTOToIncidentModel(input, auth.UserID(c))
	if err := h.incidentService.CreateIncident(c.Request.Context(), model); err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary List nearby incidents
// @Description Incidents within radius of a point, newest first. min_severity filters on the aggregate severity and only considers the newest 500 incidents in the radius.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query int false "Radius in meters" default(5000)
// @Param min_severity query number false "Minimum aggregate severity"
// @Param hashtag query string false "Hashtag without #"
// @Param since_hours query int false "Only incidents created in the last N hours"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	filter, ok := parseNearbyFilter(c)
	if !ok {
		badRequest(c, "lat and lon query parameters are required")
		return
	}

	views, err := h.incidentService.ListNearby(c.Request.Context(), filter)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ViewsToIncidentResponses(views))
}

func parseNearbyFilter(c *gin.Context) (models.NearbyFilter, bool) {
	var filter models.NearbyFilter
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return filter, false
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return filter, false
	}
	filter.Latitude, filter.Longitude = lat, lon
	filter.RadiusMeters, _ = strconv.Atoi(c.Query("radius"))
	filter.MinSeverity, _ = strconv.ParseFloat(c.Query("min_severity"), 64)
	filter.Hashtag = c.Query("hashtag")
	if hours, err := strconv.Atoi(c.Query("since_hours")); err == nil && hours > 0 {
		filter.Since = time.Now().Add(-time.Duration(hours) * time.Hour)
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	return filter, true
}

// @Summary Get incident by ID
// @Description Incident with its updates and the time-decayed aggregate severity.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid incident ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid incident ID")
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	view, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ViewToIncidentResponse(view))
}

// @Summary Delete an incident
// @Description Only the creator may delete an incident.
// @Tags Incidents
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid incident ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Not the creator"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid incident ID")
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	if err := h.incidentService.DeleteIncident(c.Request.Context(), auth.UserID(c), id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Post an update or a disprove
// @Description Media is validated against the severity of the update itself.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param update body PostUpdateRequest true "Update"
// @Success 201 {object} UpdateResponse
// @Failure 400 {object} ErrorResponse "Validation or media policy error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id}/updates [post]
func (h *Handler) postUpdate(c *gin.Context) {
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid incident ID")
		return
	}
	log := h.logger.WithField("method", "postUpdate").WithField("incident_id", incidentID)

	var input PostUpdateRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	model := DTOToUpdateModel(input, incidentID, auth.UserID(c))
	if err := h.updateService.PostUpdate(c.Request.Context(), model); err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToUpdateResponse(model))
}

// @Summary Delete an update
// @Description Allowed for the update author, or for the incident creator when the update is not a disprove.
// @Tags Incidents
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param updateId path string true "Update ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Not allowed"
// @Failure 404 {object} ErrorResponse "Update not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id}/updates/{updateId} [delete]
func (h *Handler) deleteUpdate(c *gin.Context) {
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid incident ID")
		return
	}
	updateID, err := uuid.Parse(c.Param("updateId"))
	if err != nil {
		badRequest(c, "invalid update ID")
		return
	}
	log := h.logger.WithField("method", "deleteUpdate").WithField("update_id", updateID)

	if err := h.updateService.DeleteUpdate(c.Request.Context(), auth.UserID(c), incidentID, updateID); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Hashtag feed
// @Description Incidents tagged with any of the caller's subscribed hashtags.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /feed [get]
func (h *Handler) feed(c *gin.Context) {
	log := h.logger.WithField("method", "feed")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	views, err := h.incidentService.Feed(c.Request.Context(), auth.UserID(c), page, pageSize)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ViewsToIncidentResponses(views))
}
