package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/backend"
	"github.com/hackgods/counseling-scheduler/internal/forms"
	"github.com/hackgods/counseling-scheduler/internal/session"
)

const (
	bookingNetworkMessage = "Network error. Please try again."
	bookingFailedMessage  = "Failed to schedule appointment"
	attendFailedMessage   = "Failed to update attendance"
	loadFailedMessage     = "Failed to load appointments"
)

func ownerFor(u appointment.User) string {
	return "user:" + u.UserID.String()
}

// loadAppointments fetches the owner's list and stores it in the cache. Without force
// a fresh cached entry is served instead; page loads always pass force.
func (s *Server) loadAppointments(ctx context.Context, owner string, force bool, fetch func(context.Context) ([]appointment.Appointment, error)) ([]appointment.Appointment, error) {
	if !force {
		if list, ok := s.cache.Snapshot(owner); ok {
			return list, nil
		}
	}
	list, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Replace(owner, list)
	return list, nil
}

func (s *Server) userAppointments(ctx context.Context, u appointment.User, force bool) ([]appointment.Appointment, error) {
	return s.loadAppointments(ctx, ownerFor(u), force, func(ctx context.Context) ([]appointment.Appointment, error) {
		return s.backend.ListAppointments(ctx, u.UserID)
	})
}

func (s *Server) rows(list []appointment.Appointment, today string) []appointmentRow {
	now := s.now()
	out := make([]appointmentRow, 0, len(list))
	for _, a := range list {
		out = append(out, appointmentRow{
			Appointment: a,
			Bucket:      appointment.Classify(a.Date, today),
			CanAttend:   appointment.CanMarkAttendance(a, today),
			Created:     appointment.CreatedLabel(a, now),
			LongDate:    appointment.LongDate(a.Date),
			Actions:     appointment.AvailableActions(a.Status),
		})
	}
	return out
}

// selectedDay reads an ISO day from the query, defaulting to today.
func selectedDay(r *http.Request, today string) string {
	if d, ok := appointment.Day(r.URL.Query().Get("day")); ok {
		return d
	}
	return today
}

// mustDay parses an ISO day in now's location, falling back to now.
func mustDay(day string, now time.Time) time.Time {
	t, err := time.ParseInLocation(appointment.DayLayout, day, now.Location())
	if err != nil {
		return now
	}
	return t
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r.Context())
	now := s.now()
	today := appointment.Today(now)
	day := selectedDay(r, today)

	view := dashboardView{
		Page:        s.page(r, "Dashboard"),
		Today:       today,
		SelectedDay: day,
		TimeSlots:   appointment.TimeSlots,
		Concerns:    appointment.Concerns,
	}

	list, err := s.userAppointments(r.Context(), u, true)
	if err != nil {
		log.Printf("op=list_appointments user_id=%s request_id=%s err=%v", u.UserID, GetRequestID(r.Context()), err)
		view.LoadError = backend.Message(err, loadFailedMessage)
		list = []appointment.Appointment{}
	}

	year, month := appointment.ParseMonth(r.URL.Query().Get("month"), mustDay(day, now))
	view.Month = appointment.BuildMonth(year, month, list, day, today)
	view.DayAppointments = s.rows(appointment.OnDay(list, day), today)
	view.History = s.rows(list, today)

	s.render(w, r, http.StatusOK, "dashboard", view)
}

func (s *Server) bookAppointment(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r.Context())
	today := appointment.Today(s.now())

	f := forms.Booking{
		Date:    r.PostFormValue("date"),
		Time:    r.PostFormValue("time"),
		Concern: r.PostFormValue("concern"),
	}
	if errs := f.Validate(today); errs.Any() {
		s.flash(r, "error", errs.First("date", "time", "concern"))
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	sid := sessionID(r.Context())
	err := s.locker.WithLock(r.Context(), session.ActionKey(sid, "book"), func(ctx context.Context) error {
		if _, err := s.backend.CreateAppointment(ctx, f.Request(u.UserID)); err != nil {
			return err
		}
		s.cache.Drop(appointment.OwnerAll)
		if _, err := s.userAppointments(ctx, u, true); err != nil {
			log.Printf("op=refresh_appointments user_id=%s err=%v", u.UserID, err)
		}
		return nil
	})

	switch {
	case err == nil:
		log.Printf("op=book user_id=%s date=%s time=%q request_id=%s", u.UserID, f.Date, f.Time, GetRequestID(r.Context()))
		s.flash(r, "success", "Appointment scheduled successfully!")
		http.Redirect(w, r, dayURL(f.Date), http.StatusSeeOther)
		return
	case errors.Is(err, backend.ErrNetwork):
		s.flash(r, "error", bookingNetworkMessage)
	default:
		s.flash(r, "error", actionMessage(err, bookingFailedMessage))
	}
	log.Printf("op=book user_id=%s request_id=%s err=%v", u.UserID, GetRequestID(r.Context()), err)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) markAttended(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r.Context())
	id := chi.URLParam(r, "id")
	today := appointment.Today(s.now())

	attended := true
	if raw := r.PostFormValue("attended"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			attended = v
		}
	}

	list, err := s.userAppointments(r.Context(), u, false)
	if err != nil {
		s.flash(r, "error", backend.Message(err, attendFailedMessage))
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	a, ok := appointment.Find(list, id)
	if !ok {
		s.flash(r, "error", "Appointment not found.")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if !appointment.CanMarkAttendance(a, today) {
		s.flash(r, "error", "Attendance can only be marked on the appointment day.")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	var msg string
	sid := sessionID(r.Context())
	err = s.locker.WithLock(r.Context(), session.ActionKey(sid, "attend"), func(ctx context.Context) error {
		var err error
		if msg, err = s.backend.MarkAttended(ctx, id, attended); err != nil {
			return err
		}
		s.cache.Drop(appointment.OwnerAll)
		if _, err := s.userAppointments(ctx, u, true); err != nil {
			log.Printf("op=refresh_appointments user_id=%s err=%v", u.UserID, err)
			_ = s.cache.SetAttended(ownerFor(u), id, attended)
		}
		return nil
	})
	if err != nil {
		log.Printf("op=mark_attended id=%s request_id=%s err=%v", id, GetRequestID(r.Context()), err)
		s.flash(r, "error", actionMessage(err, attendFailedMessage))
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if msg == "" {
		msg = "Attendance updated."
	}
	s.flash(r, "success", msg)
	http.Redirect(w, r, dayURL(a.Date), http.StatusSeeOther)
}

// dayURL links the student dashboard to day, or to today when day does not parse.
func dayURL(day string) string {
	d, ok := appointment.Day(day)
	if !ok {
		return "/dashboard"
	}
	return "/dashboard?" + url.Values{"day": {d}}.Encode()
}
