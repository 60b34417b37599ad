package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipient - контакт, которому уходит SOS-оповещение
type Recipient struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SOSEvent представляет запись о нажатии SOS пользователем
type SOSEvent struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription - подписка пользователя на хэштег
type Subscription struct {
	UserID    string    `json:"user_id"`
	Hashtag   string    `json:"hashtag"`
	CreatedAt time.Time `json:"created_at"`
}

// SOSStats - статистика SOS за временное окно
type SOSStats struct {
	WindowMinutes int   `json:"window_minutes"`
	Events        int64 `json:"events"`
	Users         int64 `json:"users"`
}
