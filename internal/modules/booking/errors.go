package booking

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("referenced record not found")
	ErrSlotFull   = errors.New("slot is fully booked")
)
