package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента. severity - число или числовая строка.
type CreateIncidentRequest struct {
	Title       string  `json:"title" validate:"required,min=2,max=255"`
	Description string  `json:"description,omitempty" validate:"max=5000"`
	Address     string  `json:"address,omitempty" validate:"max=500"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
	Severity    any     `json:"severity" swaggertype:"number"`
	MediaKey    string  `json:"media_key" validate:"max=512"`
}

// PostUpdateRequest DTO для дополнения или опровержения
// @Description DTO для дополнения или опровержения инцидента
type PostUpdateRequest struct {
	Kind     string  `json:"kind" validate:"required,oneof=update disprove"`
	Severity float64 `json:"severity" validate:"required,min=1,max=10"`
	Text     string  `json:"text,omitempty" validate:"max=2000"`
	MediaKey string  `json:"media_key" validate:"max=512"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                uuid.UUID         `json:"id"`
	CreatorID         string            `json:"creator_id"`
	Title             string            `json:"title"`
	Description       string            `json:"description,omitempty"`
	Address           string            `json:"address,omitempty"`
	Latitude          float64           `json:"latitude"`
	Longitude         float64           `json:"longitude"`
	Severity          float64           `json:"severity"`
	AggregateSeverity float64           `json:"aggregate_severity"`
	MediaKey          string            `json:"media_key,omitempty"`
	MediaKind         string            `json:"media_kind,omitempty"`
	Hashtags          []string          `json:"hashtags"`
	Updates           []*UpdateResponse `json:"updates,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// UpdateResponse DTO обновления инцидента
// @Description DTO обновления инцидента
type UpdateResponse struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"incident_id"`
	AuthorID   string    `json:"author_id"`
	Kind       string    `json:"kind"`
	Severity   float64   `json:"severity"`
	Text       string    `json:"text,omitempty"`
	MediaKey   string    `json:"media_key,omitempty"`
	MediaKind  string    `json:"media_kind,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UploadURLRequest DTO запроса ссылки на загрузку
// @Description Заявленный файл проверяется по политике до выдачи ссылки
type UploadURLRequest struct {
	Severity    float64 `json:"severity" validate:"required,min=1,max=10"`
	ContentType string  `json:"content_type" validate:"required"`
	Size        int64   `json:"size" validate:"required,gt=0"`
}

// UploadURLResponse DTO подписанной ссылки на загрузку
type UploadURLResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	Kind      string    `json:"kind"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DownloadURLResponse DTO подписанной ссылки на чтение
type DownloadURLResponse struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

// MediaRequirementResponse DTO требования к медиа для тяжести
type MediaRequirementResponse struct {
	Severity float64 `json:"severity"`
	Kind     string  `json:"kind"`
	MaxBytes int64   `json:"max_bytes"`
	MaxMB    float64 `json:"max_mb"`
}

// RecipientRequest DTO получателя SOS
// @Description Нужен телефон или email
type RecipientRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone,omitempty" validate:"omitempty,e164"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// RecipientResponse DTO получателя SOS
type RecipientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SOSRequest DTO нажатия SOS
type SOSRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Message   string  `json:"message,omitempty" validate:"max=500"`
}

// SOSResponse DTO результата SOS
type SOSResponse struct {
	EventID    int64     `json:"event_id"`
	Recipients int       `json:"recipients"`
	CreatedAt  time.Time `json:"created_at"`
}

// SOSEventResponse DTO записи истории SOS
type SOSEventResponse struct {
	ID        int64     `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriptionRequest DTO подписки на хэштег
type SubscriptionRequest struct {
	Hashtag string `json:"hashtag" validate:"required,max=51"`
}

// SubscriptionsResponse DTO списка подписок
type SubscriptionsResponse struct {
	Hashtags []string `json:"hashtags"`
}

// AddressResponse DTO адреса из кеша
type AddressResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	WindowMinutes int   `json:"window_minutes"`
	SOSEvents     int64 `json:"sos_events"`
	UserCount     int64 `json:"user_count"`
}
