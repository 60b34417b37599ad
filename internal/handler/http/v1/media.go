package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_map/internal/auth"
	"github.com/shenikar/incident_map/internal/media"
)

// @Summary Request a presigned upload URL
// @Description The declared file is checked against the media policy before any URL is issued. The PUT must carry the same Content-Type: evidence stored without an image/* or video/* type is rejected.
// @Tags Media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UploadURLRequest true "Declared file"
// @Success 201 {object} UploadURLResponse
// @Failure 400 {object} ErrorResponse "Validation or media policy error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /media/upload-url [post]
func (h *Handler) requestUploadURL(c *gin.Context) {
	var input UploadURLRequest
	log := h.logger.WithField("method", "requestUploadURL")

	if !h.bindJSON(c, log, &input) {
		return
	}

	ticket, err := h.mediaService.RequestUpload(c.Request.Context(), auth.UserID(c), input.Severity, input.ContentType, input.Size)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, UploadURLResponse{
		Key:       ticket.Key,
		UploadURL: ticket.UploadURL,
		Kind:      ticket.Kind,
		ExpiresAt: ticket.ExpiresAt,
	})
}

// @Summary Get a presigned download URL
// @Description Returns a temporary URL and the kind of renderer to use.
// @Tags Media
// @Produce json
// @Security BearerAuth
// @Param key query string true "Media key"
// @Success 200 {object} DownloadURLResponse
// @Failure 400 {object} ErrorResponse "Invalid key"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /media/download-url [get]
func (h *Handler) downloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		badRequest(c, "key query parameter is required")
		return
	}
	log := h.logger.WithField("method", "downloadURL").WithField("key", key)

	u, err := h.mediaService.DownloadURL(c.Request.Context(), key)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, DownloadURLResponse{URL: u, Kind: string(media.InferKindFromURL(key))})
}

// @Summary Media requirement for a severity
// @Description Which media kind is required for the severity and its size ceiling.
// @Tags Media
// @Produce json
// @Param severity query number true "Declared severity"
// @Success 200 {object} MediaRequirementResponse
// @Failure 400 {object} ErrorResponse "Invalid severity"
// @Router /media/requirement [get]
func (h *Handler) mediaRequirement(c *gin.Context) {
	sev, err := strconv.ParseFloat(c.Query("severity"), 64)
	if err != nil {
		badRequest(c, "severity query parameter must be a number")
		return
	}
	c.JSON(http.StatusOK, ModelToRequirementResponse(h.mediaService.Requirement(sev)))
}
