package models

import (
	"time"

	"github.com/google/uuid"
)

// UpdateKind - тип обновления инцидента
type UpdateKind string

const (
	UpdateKindUpdate   UpdateKind = "update"
	UpdateKindDisprove UpdateKind = "disprove"
)

type Incident struct {
	ID          uuid.UUID `json:"id"`
	CreatorID   string    `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Severity    float64   `json:"severity"`
	MediaURL    string    `json:"media_url,omitempty"`
	Hashtags    []string  `json:"hashtags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Update - дополнение или опровержение инцидента
type Update struct {
	ID         uuid.UUID  `json:"id"`
	IncidentID uuid.UUID  `json:"incident_id"`
	AuthorID   string     `json:"author_id"`
	Kind       UpdateKind `json:"kind"`
	Severity   float64    `json:"severity"`
	Text       string     `json:"text"`
	MediaURL   string     `json:"media_url,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IncidentView - инцидент вместе с обновлениями и итоговой тяжестью
type IncidentView struct {
	Incident          *Incident `json:"incident"`
	Updates           []*Update `json:"updates"`
	AggregateSeverity float64   `json:"aggregate_severity"`
}

// NearbyFilter - параметры поиска инцидентов на карте
type NearbyFilter struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	MinSeverity  float64
	Hashtag      string
	Since        time.Time
	Page         int
	PageSize     int
}

// MediaObject - метаданные загруженного в хранилище объекта
type MediaObject struct {
	Key         string
	Size        int64
	ContentType string
}

// UploadTicket - подписанная ссылка для загрузки медиа
type UploadTicket struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	Kind      string    `json:"kind"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MediaRequirement - требуемый тип медиа и лимит размера для тяжести
type MediaRequirement struct {
	Severity float64 `json:"severity"`
	Kind     string  `json:"kind"`
	MaxBytes int64   `json:"max_bytes"`
}
