package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/backend"
	"github.com/hackgods/counseling-scheduler/internal/forms"
	"github.com/hackgods/counseling-scheduler/internal/session"
)

var (
	errUsage               = errors.New("usage")
	errInvalidInput        = errors.New("invalid input")
	errAdminRequired       = errors.New("admin role required")
	errNotOnAppointmentDay = errors.New("attendance outside the appointment day")
)

const (
	notLoggedInMessage  = "Not logged in. Run: counsel login -u USERNAME"
	accessDeniedMessage = "Access denied. Admin privileges required."
)

type app struct {
	client   *backend.Client
	holder   *session.Holder
	sid      string
	now      func() time.Time
	out      io.Writer
	password func(label string) (string, error)
}

// failure carries the text shown to the user and the error behind it.
type failure struct {
	msg string
	err error
}

func (f *failure) Error() string { return f.msg }
func (f *failure) Unwrap() error { return f.err }

func fail(err error, fallback string) error {
	return &failure{msg: backend.Message(err, fallback), err: err}
}

func invalid(msg string) error {
	return &failure{msg: msg, err: errInvalidInput}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	handlers := map[string]func(context.Context, []string) error{
		"login":      a.login,
		"register":   a.register,
		"logout":     a.logout,
		"whoami":     a.whoami,
		"book":       a.book,
		"list":       a.list,
		"attend":     a.attend,
		"admin-list": a.adminList,
		"set-status": a.setStatus,
		"report":     a.report,
	}
	h, ok := handlers[cmd]
	if !ok {
		return errUsage
	}
	return h(ctx, args)
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) today() string { return appointment.Today(a.now()) }

func (a *app) currentUser(ctx context.Context) (appointment.User, error) {
	u, err := a.holder.Current(ctx, a.sid)
	if errors.Is(err, session.ErrNotAuthenticated) {
		return appointment.User{}, &failure{msg: notLoggedInMessage, err: err}
	}
	return u, err
}

func (a *app) currentAdmin(ctx context.Context) (appointment.User, error) {
	u, err := a.currentUser(ctx)
	if err != nil {
		return u, err
	}
	if !u.IsAdmin() {
		return appointment.User{}, &failure{msg: accessDeniedMessage, err: errAdminRequired}
	}
	return u, nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	username := fs.String("u", "", "username")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	pw, err := a.password("Password: ")
	if err != nil {
		return err
	}

	f := forms.Login{Username: strings.TrimSpace(*username), Password: pw}
	if errs := f.Validate(); errs.Any() {
		return invalid(errs.Get(forms.General))
	}

	user, err := a.client.Login(ctx, backend.LoginRequest{Username: f.Username, Password: f.Password})
	if err != nil {
		return fail(err, "Login failed. Please try again.")
	}
	if err := a.holder.SignIn(ctx, a.sid, user); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Login successful! Signed in as %s (%s).\n", user.Username, user.Role)
	return nil
}

var registerFieldOrder = []string{forms.General, "username", "idNumber", "birthdate", "password", "confirmPassword"}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlags("register")
	username := fs.String("u", "", "username")
	idNumber := fs.String("id", "", "student id number")
	birthdate := fs.String("birthdate", "", "YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	pw, err := a.password("Password: ")
	if err != nil {
		return err
	}
	confirm, err := a.password("Confirm password: ")
	if err != nil {
		return err
	}

	f := forms.Register{
		Username:        *username,
		IDNumber:        *idNumber,
		Birthdate:       *birthdate,
		Password:        pw,
		ConfirmPassword: confirm,
	}
	if errs := f.Validate(); errs.Any() {
		var msgs []string
		for _, field := range registerFieldOrder {
			if m := errs.Get(field); m != "" {
				msgs = append(msgs, m)
			}
		}
		return invalid(strings.Join(msgs, "\n"))
	}
	f = f.Normalize()
	fmt.Fprintf(a.out, "Password strength: %s\n", forms.PasswordStrength(f.Password))

	_, err = a.client.Register(ctx, backend.RegisterRequest{
		Username:  f.Username,
		Password:  f.Password,
		IDNumber:  f.IDNumber,
		Birthdate: f.Birthdate,
	})
	if err != nil {
		return fail(err, "Registration failed. Please try again.")
	}
	fmt.Fprintln(a.out, "Registration successful! Please login.")
	return nil
}

func (a *app) logout(ctx context.Context, _ []string) error {
	if err := a.holder.SignOut(ctx, a.sid); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) whoami(ctx context.Context, _ []string) error {
	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s) id=%s id_number=%s\n", u.Username, u.Role, u.UserID, u.IDNumber)
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := newFlags("book")
	date := fs.String("date", "", "YYYY-MM-DD")
	slot := fs.String("time", "", `preferred time, e.g. "09:00 AM"`)
	concern := fs.String("concern", "", "Academic, Personal, Career, Mental Health, Relationship or Other")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	f := forms.Booking{Date: *date, Time: *slot, Concern: *concern}
	if errs := f.Validate(a.today()); errs.Any() {
		return invalid(errs.First("date", "time", "concern"))
	}

	if _, err := a.client.CreateAppointment(ctx, f.Request(u.UserID)); err != nil {
		if errors.Is(err, backend.ErrNetwork) {
			return &failure{msg: "Network error. Please try again.", err: err}
		}
		return fail(err, "Failed to schedule appointment")
	}
	fmt.Fprintln(a.out, "Appointment scheduled successfully!")
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := newFlags("list")
	day := fs.String("day", "", "only this YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	list, err := a.client.ListAppointments(ctx, u.UserID)
	if err != nil {
		return fail(err, "Failed to load appointments")
	}
	if *day != "" {
		d, ok := appointment.Day(*day)
		if !ok {
			return invalid("Please choose a valid date")
		}
		list = appointment.OnDay(list, d)
	}
	return printHistory(a.out, list, a.today(), a.now())
}

func (a *app) attend(ctx context.Context, args []string) error {
	fs := newFlags("attend")
	no := fs.Bool("no", false, "record that you did not attend")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}
	id := fs.Arg(0)
	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	list, err := a.client.ListAppointments(ctx, u.UserID)
	if err != nil {
		return fail(err, "Failed to update attendance")
	}
	appt, ok := appointment.Find(list, id)
	if !ok {
		return &failure{msg: "Appointment not found.", err: appointment.ErrAppointmentNotFound}
	}
	if !appointment.CanMarkAttendance(appt, a.today()) {
		return &failure{msg: "Attendance can only be marked on the appointment day.", err: errNotOnAppointmentDay}
	}

	msg, err := a.client.MarkAttended(ctx, id, !*no)
	if err != nil {
		return fail(err, "Failed to update attendance")
	}
	if msg == "" {
		msg = "Attendance updated."
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *app) adminList(ctx context.Context, args []string) error {
	fs := newFlags("admin-list")
	status := fs.String("status", string(appointment.FilterAll), "status filter")
	day := fs.String("day", "", "only this YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if _, err := a.currentAdmin(ctx); err != nil {
		return err
	}

	f, err := cliFilter(*status, *day)
	if err != nil {
		return err
	}
	all, err := a.client.ListAllAppointments(ctx)
	if err != nil {
		return fail(err, "Failed to connect to server. Please try again.")
	}

	printQuickStats(a.out, all)
	return printAdminRows(a.out, appointment.Apply(all, f))
}

func cliFilter(status, day string) (appointment.Filter, error) {
	f := appointment.Filter{Status: appointment.ParseStatusFilter(status)}
	if day != "" {
		d, ok := appointment.Day(day)
		if !ok {
			return appointment.Filter{}, invalid("Please choose a valid date")
		}
		f.Day = d
	}
	return f, nil
}

func (a *app) setStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	id := args[0]
	if _, err := a.currentAdmin(ctx); err != nil {
		return err
	}
	status, err := appointment.ParseStatus(args[1])
	if err != nil {
		return &failure{msg: "Unknown appointment status.", err: err}
	}

	all, err := a.client.ListAllAppointments(ctx)
	if err != nil {
		return fail(err, "Failed to connect to server. Please try again.")
	}
	if appt, ok := appointment.Find(all, id); ok {
		if err := appointment.CheckTransition(appt.Status, status); err != nil {
			if errors.Is(err, appointment.ErrInvalidStatusTransition) {
				return &failure{msg: "Pending appointments can only be approved or rejected.", err: err}
			}
			return err
		}
	}

	if _, err := a.client.UpdateStatus(ctx, id, status); err != nil {
		return fail(err, "Failed to update appointment")
	}
	fmt.Fprintf(a.out, "Appointment %s successfully!\n", strings.ToLower(string(status)))
	return nil
}

func (a *app) report(ctx context.Context, args []string) error {
	fs := newFlags("report")
	kind := fs.String("type", string(appointment.ReportAll), "all, approved, rejected or filtered")
	status := fs.String("status", string(appointment.FilterAll), "status filter for -type filtered")
	day := fs.String("day", "", "day filter for -type filtered")
	out := fs.String("o", "", `output file, "-" for stdout`)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if _, err := a.currentAdmin(ctx); err != nil {
		return err
	}

	f, err := cliFilter(*status, *day)
	if err != nil {
		return err
	}
	all, err := a.client.ListAllAppointments(ctx)
	if err != nil {
		return fail(err, "Failed to connect to server. Please try again.")
	}
	rep := appointment.BuildReport(appointment.ParseReportType(*kind), all, f, a.now())

	if *out == "-" {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	path := *out
	if path == "" {
		path = rep.Filename("json")
	}
	raw, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Fprintf(a.out, "%s: %d appointment(s) written to %s\n", rep.Title, rep.Total, path)
	for _, sc := range rep.Statistics {
		fmt.Fprintf(a.out, "  %-10s %d\n", sc.Status, sc.Count)
	}
	return nil
}
