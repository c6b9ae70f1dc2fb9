package forms

import (
	"strings"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/backend"
)

const MissingBookingFields = "Please fill all appointment fields"

type Booking struct {
	Date    string `form:"date" validate:"required,datetime=2006-01-02"`
	Time    string `form:"time" validate:"required,timeslot"`
	Concern string `form:"concern" validate:"required,concern"`
}

var bookingMessages = messages{
	"date":    {"datetime": "Please choose a valid date"},
	"time":    {"timeslot": "Please choose one of the available time slots"},
	"concern": {"concern": "Please choose a concern type"},
}

// Validate checks the booking form against today's ISO day. Any missing field
// collapses into one general message.
func (f Booking) Validate(today string) Errors {
	f.Date = strings.TrimSpace(f.Date)
	if f.Date == "" || f.Time == "" || f.Concern == "" {
		return Errors{General: MissingBookingFields}
	}
	if errs := check(f, bookingMessages); errs.Any() {
		return errs
	}
	if appointment.IsPast(f.Date, today) {
		return Errors{"date": "Appointment date cannot be in the past"}
	}
	return nil
}

// Request converts a valid form into the backend payload for userID.
func (f Booking) Request(userID appointment.ID) backend.CreateAppointmentRequest {
	return backend.CreateAppointmentRequest{
		UserID:        userID,
		Date:          strings.TrimSpace(f.Date),
		PreferredTime: appointment.TimeSlot(f.Time),
		ConcernType:   appointment.Concern(f.Concern),
	}
}
