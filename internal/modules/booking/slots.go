package booking

import (
	"fmt"
	"time"

	"petcare/internal/domain"
)

// AppointmentSlotCapacity is the hard limit of clinic appointments sharing
// one half-hour slot.
const AppointmentSlotCapacity = 2

const (
	dateLayout    = "2006-01-02"
	slotKeyLayout = "2006-01-02T15:04"
)

// Clinic appointments run on fixed half-hour labels, mornings and afternoons.
var appointmentLabels = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00",
}

// Grooming and other services are booked per whole hour.
var serviceLabels = []string{
	"08:00", "09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00",
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func labelAllowed(kind domain.RegistrationKind, label string) bool {
	var set []string
	switch kind {
	case domain.KindAppointment:
		set = appointmentLabels
	case domain.KindService:
		set = serviceLabels
	default:
		return false
	}
	for _, l := range set {
		if l == label {
			return true
		}
	}
	return false
}

// buildSlotKey validates the proposed slot and returns its canonical form.
// Format problems are rejected here, before any capacity work happens.
func buildSlotKey(kind domain.RegistrationKind, dateStr, label, endDateStr string) (slotKey string, endDate *time.Time, err error) {
	day, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return "", nil, fmt.Errorf("%w: unparseable date %q", ErrValidation, dateStr)
	}

	switch kind {
	case domain.KindAppointment, domain.KindService:
		if !labelAllowed(kind, label) {
			return "", nil, fmt.Errorf("%w: time %q is not a bookable %s slot", ErrValidation, label, kind)
		}
		return dateStr + "T" + label, nil, nil

	case domain.KindBoarding:
		end, err := time.Parse(dateLayout, endDateStr)
		if err != nil {
			return "", nil, fmt.Errorf("%w: unparseable end date %q", ErrValidation, endDateStr)
		}
		if !end.After(day) {
			return "", nil, fmt.Errorf("%w: boarding end date must be after start date", ErrValidation)
		}
		return dateStr + "T00:00", &end, nil

	default:
		return "", nil, fmt.Errorf("%w: unknown registration kind %q", ErrValidation, kind)
	}
}
