package v1

import (
	"github.com/google/uuid"
	"github.com/shenikar/incident_map/internal/media"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/shenikar/incident_map/internal/severity"
)

const bytesInMB = 1024 * 1024

// DTOToIncidentModel преобразует DTO создания в доменную модель
func DTOToIncidentModel(dto CreateIncidentRequest, creatorID string) *models.Incident {
	return &models.Incident{
		CreatorID:   creatorID,
		Title:       dto.Title,
		Description: dto.Description,
		Address:     dto.Address,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		Severity:    severity.ParseBase(dto.Severity),
		MediaURL:    dto.MediaKey,
	}
}

func DTOToUpdateModel(dto PostUpdateRequest, incidentID uuid.UUID, authorID string) *models.Update {
	return &models.Update{
		IncidentID: incidentID,
		AuthorID:   authorID,
		Kind:       models.UpdateKind(dto.Kind),
		Severity:   dto.Severity,
		Text:       dto.Text,
		MediaURL:   dto.MediaKey,
	}
}

// ModelToIncidentResponse преобразует только что созданный инцидент: обновлений еще нет
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return incidentResponse(model, severity.Round(severity.Clamp(model.Severity)))
}

// ViewToIncidentResponse преобразует инцидент с обновлениями и итоговой тяжестью
func ViewToIncidentResponse(view *models.IncidentView) *IncidentResponse {
	resp := incidentResponse(view.Incident, view.AggregateSeverity)
	resp.Updates = make([]*UpdateResponse, len(view.Updates))
	for i, u := range view.Updates {
		resp.Updates[i] = ModelToUpdateResponse(u)
	}
	return resp
}

// ViewsToIncidentResponses преобразует слайс моделей в слайс DTO
func ViewsToIncidentResponses(views []*models.IncidentView) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(views))
	for i, view := range views {
		responses[i] = ViewToIncidentResponse(view)
	}
	return responses
}

func incidentResponse(model *models.Incident, aggregate float64) *IncidentResponse {
	hashtags := model.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	return &IncidentResponse{
		ID:                model.ID,
		CreatorID:         model.CreatorID,
		Title:             model.Title,
		Description:       model.Description,
		Address:           model.Address,
		Latitude:          model.Latitude,
		Longitude:         model.Longitude,
		Severity:          model.Severity,
		AggregateSeverity: aggregate,
		MediaKey:          model.MediaURL,
		MediaKind:         mediaKind(model.MediaURL),
		Hashtags:          hashtags,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func ModelToUpdateResponse(model *models.Update) *UpdateResponse {
	return &UpdateResponse{
		ID:         model.ID,
		IncidentID: model.IncidentID,
		AuthorID:   model.AuthorID,
		Kind:       string(model.Kind),
		Severity:   model.Severity,
		Text:       model.Text,
		MediaKey:   model.MediaURL,
		MediaKind:  mediaKind(model.MediaURL),
		CreatedAt:  model.CreatedAt,
	}
}

// mediaKind выбирает способ отображения сохраненного медиа
func mediaKind(key string) string {
	if key == "" {
		return ""
	}
	return string(media.InferKindFromURL(key))
}

func ModelToRequirementResponse(req *models.MediaRequirement) *MediaRequirementResponse {
	return &MediaRequirementResponse{
		Severity: req.Severity,
		Kind:     req.Kind,
		MaxBytes: req.MaxBytes,
		MaxMB:    severity.Round(float64(req.MaxBytes) / bytesInMB),
	}
}

func ModelsToRecipientResponses(recipients []*models.Recipient) []*RecipientResponse {
	responses := make([]*RecipientResponse, len(recipients))
	for i, r := range recipients {
		responses[i] = &RecipientResponse{
			ID:        r.ID,
			Name:      r.Name,
			Phone:     r.Phone,
			Email:     r.Email,
			CreatedAt: r.CreatedAt,
		}
	}
	return responses
}

func ModelsToSOSEventResponses(events []*models.SOSEvent) []*SOSEventResponse {
	responses := make([]*SOSEventResponse, len(events))
	for i, e := range events {
		responses[i] = &SOSEventResponse{
			ID:        e.ID,
			Latitude:  e.Latitude,
			Longitude: e.Longitude,
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		}
	}
	return responses
}
