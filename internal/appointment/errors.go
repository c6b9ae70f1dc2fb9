package appointment

import "errors"

var (
	ErrUnknownStatus           = errors.New("unknown appointment status")
	ErrInvalidStatusTransition = errors.New("pending appointments can only be approved or rejected")
	ErrAppointmentNotFound     = errors.New("appointment not found")
)
