package domain

import "time"

type PaymentAttemptStatus string

const (
	AttemptCreated   PaymentAttemptStatus = "created"
	AttemptConfirmed PaymentAttemptStatus = "confirmed"
	AttemptFailed    PaymentAttemptStatus = "failed"
)

// PaymentAttempt logs every payment link handed to the gateway and the callback
// outcome that came back for it. One registration may accumulate several
// attempts; at most one ends up confirmed.
type PaymentAttempt struct {
	ID             string               `json:"id" gorm:"primaryKey"`
	RegistrationID int64                `json:"registration_id"`
	Reference      string               `json:"reference"`
	Amount         int64                `json:"amount"`
	PaymentURL     string               `json:"payment_url" gorm:"type:text"`
	Status         PaymentAttemptStatus `json:"status"`
	CallbackQuery  string               `json:"-" gorm:"type:text"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
