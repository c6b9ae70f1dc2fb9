package web

import (
	"html/template"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/forms"
	"github.com/hackgods/counseling-scheduler/internal/session"
)

const (
	AccessDeniedMessage   = "Access denied. Admin privileges required."
	AdminFetchFailMessage = "Failed to connect to server. Please try again."
	InProgressMessage     = "A request is already in progress."
)

// Page is embedded in every view.
type Page struct {
	Title     string
	User      *appointment.User
	Flash     *session.Flash
	CSRFField template.HTML
}

type loginView struct {
	Page
	Username string
	Error    string
}

type registerView struct {
	Page
	Form     forms.Register
	Errors   forms.Errors
	Strength forms.Strength
}

type infoView struct {
	Page
	Body template.HTML
}

type deniedView struct {
	Page
	Message  string
	Redirect string
}

// appointmentRow is an appointment with everything derived for display.
type appointmentRow struct {
	appointment.Appointment
	Bucket    appointment.Bucket
	CanAttend bool
	Created   string
	LongDate  string
	Actions   []appointment.Action
}

type dashboardView struct {
	Page
	Today           string
	Month           appointment.Month
	SelectedDay     string
	DayAppointments []appointmentRow
	History         []appointmentRow
	TimeSlots       []appointment.TimeSlot
	Concerns        []appointment.Concern
	LoadError       string
}

type adminView struct {
	Page
	Today         string
	StatusOptions []appointment.StatusFilter
	Status        appointment.StatusFilter
	Day           string
	DayParam      string
	Month         appointment.Month
	Rows          []appointmentRow
	QuickStats    []appointment.StatusCount
	Total         int
	ReportTypes   []appointment.ReportType
	Query         string
	Error         string
}
