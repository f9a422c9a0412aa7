package domain

import "time"

const (
	NotifyRegistrationCreated = "registration.created"
	NotifyPaymentConfirmed    = "payment.confirmed"
)

type Notification struct {
	ID             int64     `json:"id"`
	OwnerID        int64     `json:"owner_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message" gorm:"type:text"`
	RegistrationID *int64    `json:"registration_id,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
