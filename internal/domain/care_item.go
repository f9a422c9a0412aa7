package domain

import "time"

// CareItem is a catalog entry: a clinic exam, a grooming service or a boarding
// package. Price is VND in the smallest unit and is copied onto registrations
// at creation time.
type CareItem struct {
	ID          int64            `json:"id"`
	Kind        RegistrationKind `json:"kind"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty" gorm:"type:text"`
	Price       int64            `json:"price"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
}
