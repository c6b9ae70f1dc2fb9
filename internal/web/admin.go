package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/session"
)

const (
	updateFailedMessage = "Failed to update appointment"
	anyDay              = "any"
)

func (s *Server) allAppointments(ctx context.Context, force bool) ([]appointment.Appointment, error) {
	return s.loadAppointments(ctx, appointment.OwnerAll, force, s.backend.ListAllAppointments)
}

// adminFilter reads status and day from a query. An empty day means today and
// "any" turns the day predicate off.
func adminFilter(q url.Values, today string) (appointment.Filter, string) {
	f := appointment.Filter{Status: appointment.ParseStatusFilter(q.Get("status"))}
	raw := q.Get("day")
	if raw == anyDay {
		return f, anyDay
	}
	f.Day = today
	if d, ok := appointment.Day(raw); ok {
		f.Day = d
	}
	return f, f.Day
}

// adminQuery re-encodes only the known dashboard parameters.
func adminQuery(q url.Values) url.Values {
	out := url.Values{}
	for _, k := range []string{"status", "day", "month"} {
		if v := q.Get(k); v != "" {
			out.Set(k, v)
		}
	}
	return out
}

func (s *Server) adminDashboard(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	today := appointment.Today(now)
	q := r.URL.Query()
	filter, dayParam := adminFilter(q, today)

	view := adminView{
		Page:          s.page(r, "Admin Dashboard"),
		Today:         today,
		StatusOptions: appointment.StatusFilterOptions(),
		Status:        filter.Status,
		Day:           filter.Day,
		DayParam:      dayParam,
		ReportTypes:   appointment.ReportTypes,
		Query:         adminQuery(q).Encode(),
	}

	list, err := s.allAppointments(r.Context(), true)
	if err != nil {
		log.Printf("op=list_all_appointments request_id=%s err=%v", GetRequestID(r.Context()), err)
		view.Error = AdminFetchFailMessage
		list = []appointment.Appointment{}
	}

	anchor := filter.Day
	if anchor == "" {
		anchor = today
	}
	year, month := appointment.ParseMonth(q.Get("month"), mustDay(anchor, now))
	view.Month = appointment.BuildMonth(year, month, list, filter.Day, today)
	view.Rows = s.rows(appointment.Apply(list, filter), today)
	view.QuickStats = appointment.QuickStats(list)
	view.Total = len(list)

	s.render(w, r, http.StatusOK, "admin", view)
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := "/adminDashboard"
	if ret, err := url.ParseQuery(r.PostFormValue("return")); err == nil {
		if enc := adminQuery(ret).Encode(); enc != "" {
			back += "?" + enc
		}
	}

	status, err := appointment.ParseStatus(r.PostFormValue("status"))
	if err != nil {
		s.flash(r, "error", "Unknown appointment status.")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	var owner string
	if list, err := s.allAppointments(r.Context(), false); err == nil {
		if a, ok := appointment.Find(list, id); ok {
			owner = ownerFor(appointment.User{UserID: a.UserID})
			if err := appointment.CheckTransition(a.Status, status); err != nil {
				s.flash(r, "error", transitionMessage(err))
				http.Redirect(w, r, back, http.StatusSeeOther)
				return
			}
		}
	}

	sid := sessionID(r.Context())
	err = s.locker.WithLock(r.Context(), session.ActionKey(sid, "status"), func(ctx context.Context) error {
		_, err := s.backend.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		log.Printf("op=update_status id=%s status=%s request_id=%s err=%v", id, status, GetRequestID(r.Context()), err)
		s.flash(r, "error", actionMessage(err, updateFailedMessage))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	if err := s.cache.SetStatus(appointment.OwnerAll, id, status); err != nil && !errors.Is(err, appointment.ErrAppointmentNotFound) {
		log.Printf("op=patch_cache id=%s err=%v", id, err)
	}
	if owner != "" {
		s.cache.Drop(owner)
	}
	log.Printf("op=update_status id=%s status=%s request_id=%s", id, status, GetRequestID(r.Context()))
	s.flash(r, "success", fmt.Sprintf("Appointment %s successfully!", strings.ToLower(string(status))))
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func transitionMessage(err error) string {
	if errors.Is(err, appointment.ErrInvalidStatusTransition) {
		return "Pending appointments can only be approved or rejected."
	}
	return "Unknown appointment status."
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	q := r.URL.Query()
	filter, _ := adminFilter(q, appointment.Today(now))
	rt := appointment.ParseReportType(q.Get("type"))

	list, err := s.allAppointments(r.Context(), true)
	if err != nil {
		log.Printf("op=report request_id=%s err=%v", GetRequestID(r.Context()), err)
		writeError(w, http.StatusBadGateway, AdminFetchFailMessage, err.Error())
		return
	}

	rep := appointment.BuildReport(rt, list, filter, now)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename("json")))
	writeJSON(w, http.StatusOK, rep)
}
