package domain

import "time"

type RegistrationKind string

const (
	KindAppointment RegistrationKind = "appointment"
	KindService     RegistrationKind = "service"
	KindBoarding    RegistrationKind = "boarding"
)

// ActivityStatus tracks the care workflow and is independent from payment state.
type ActivityStatus string

const (
	ActivityScheduled  ActivityStatus = "scheduled"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityDone       ActivityStatus = "done"
	ActivityCancelled  ActivityStatus = "cancelled"
	ActivityComplete   ActivityStatus = "complete"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Registration is a booked appointment, grooming service or boarding stay.
// SlotKey is the canonical "2006-01-02T15:04" bucket the registration occupies;
// boarding additionally carries EndDate. SlotSeq is the occupancy index inside
// a capacity-limited appointment slot and is nil for the other kinds.
type Registration struct {
	ID             int64            `json:"id"`
	OwnerID        int64            `json:"owner_id"`
	PetID          int64            `json:"pet_id"`
	ItemID         int64            `json:"item_id"`
	Kind           RegistrationKind `json:"kind"`
	SlotKey        string           `json:"slot_key"`
	SlotSeq        *int16           `json:"-"`
	EndDate        *time.Time       `json:"end_date,omitempty"`
	Price          int64            `json:"price"`
	ActivityStatus ActivityStatus   `json:"activity_status"`
	PaymentStatus  PaymentStatus    `json:"payment_status"`
	Notes          string           `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	PaidAt         *time.Time       `json:"paid_at,omitempty"`

	Pet  *Pet      `json:"pet,omitempty"`
	Item *CareItem `json:"item,omitempty"`
}
