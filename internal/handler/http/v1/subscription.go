package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_map/internal/auth"
)

// @Summary List hashtag subscriptions
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SubscriptionsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /subscriptions [get]
func (h *Handler) listSubscriptions(c *gin.Context) {
	log := h.logger.WithField("method", "listSubscriptions")

	tags, err := h.subscriptionService.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SubscriptionsResponse{Hashtags: tags})
}

// @Summary Subscribe to a hashtag
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subscription body SubscriptionRequest true "Hashtag, with or without #"
// @Success 201 {object} SubscriptionRequest
// @Failure 400 {object} ErrorResponse "Invalid hashtag"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /subscriptions [post]
func (h *Handler) subscribe(c *gin.Context) {
	var input SubscriptionRequest
	log := h.logger.WithField("method", "subscribe")

	if !h.bindJSON(c, log, &input) {
		return
	}

	tag, err := h.subscriptionService.Subscribe(c.Request.Context(), auth.UserID(c), input.Hashtag)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, SubscriptionRequest{Hashtag: tag})
}

// @Summary Unsubscribe from a hashtag
// @Tags Subscriptions
// @Security BearerAuth
// @Param tag path string true "Hashtag"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid hashtag"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /subscriptions/{tag} [delete]
func (h *Handler) unsubscribe(c *gin.Context) {
	log := h.logger.WithField("method", "unsubscribe")

	if err := h.subscriptionService.Unsubscribe(c.Request.Context(), auth.UserID(c), c.Param("tag")); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cached address for coordinates
// @Description Coordinates are rounded to 4 decimals. Addresses are remembered when incidents are created.
// @Tags Geo
// @Produce json
// @Security BearerAuth
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} AddressResponse
// @Failure 400 {object} ErrorResponse "Invalid coordinates"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "No cached address"
// @Router /geo/address [get]
func (h *Handler) lookupAddress(c *gin.Context) {
	log := h.logger.WithField("method", "lookupAddress")

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		badRequest(c, "lat and lon query parameters are required")
		return
	}

	addr, ok, err := h.addressService.Lookup(c.Request.Context(), lat, lon)
	if err != nil {
		respondError(c, log, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "address not cached", Type: "not_found"})
		return
	}
	c.JSON(http.StatusOK, AddressResponse{Latitude: lat, Longitude: lon, Address: addr})
}
