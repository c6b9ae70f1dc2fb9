package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/backend"
	"github.com/hackgods/counseling-scheduler/internal/forms"
	"github.com/hackgods/counseling-scheduler/internal/session"
)

const (
	loginFailedMessage    = "Login failed. Please try again."
	registerFailedMessage = "Registration failed. Please try again."
)

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", loginView{Page: s.page(r, "Login")})
}

func (s *Server) loginLimited(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusTooManyRequests, "login", loginView{
		Page:     s.page(r, "Login"),
		Username: r.PostFormValue("username"),
		Error:    TooManyAttemptsMessage,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	f := forms.Login{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	fail := func(status int, msg string) {
		s.render(w, r, status, "login", loginView{Page: s.page(r, "Login"), Username: f.Username, Error: msg})
	}

	if errs := f.Validate(); errs.Any() {
		fail(http.StatusBadRequest, errs.Get(forms.General))
		return
	}

	sid := sessionID(r.Context())
	var user appointment.User
	err := s.locker.WithLock(r.Context(), session.ActionKey(sid, "login"), func(ctx context.Context) error {
		var err error
		user, err = s.backend.Login(ctx, backend.LoginRequest{Username: f.Username, Password: f.Password})
		return err
	})
	if err != nil {
		log.Printf("op=login username=%s request_id=%s err=%v", f.Username, GetRequestID(r.Context()), err)
		fail(failureStatus(err), actionMessage(err, loginFailedMessage))
		return
	}

	// a fresh session id on sign in; the anonymous one is discarded
	newSID := session.NewID()
	if err := s.holder.SignIn(r.Context(), newSID, user); err != nil {
		log.Printf("op=sign_in request_id=%s err=%v", GetRequestID(r.Context()), err)
		fail(http.StatusInternalServerError, loginFailedMessage)
		return
	}
	_ = s.holder.SignOut(r.Context(), sid)
	s.setSessionCookie(w, newSID)
	_ = s.holder.SetFlash(r.Context(), newSID, session.Flash{Kind: "success", Message: "Login successful!"})

	log.Printf("op=login username=%s role=%s request_id=%s", user.Username, user.Role, GetRequestID(r.Context()))
	http.Redirect(w, r, homeFor(user), http.StatusSeeOther)
}

func homeFor(u appointment.User) string {
	if u.IsAdmin() {
		return "/adminDashboard"
	}
	return "/dashboard"
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", registerView{Page: s.page(r, "Register")})
}

func (s *Server) registerLimited(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusTooManyRequests, "register", registerView{
		Page:   s.page(r, "Register"),
		Errors: forms.Errors{forms.General: TooManyAttemptsMessage},
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	f := forms.Register{
		Username:        r.PostFormValue("username"),
		IDNumber:        r.PostFormValue("idNumber"),
		Birthdate:       r.PostFormValue("birthdate"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
	fail := func(status int, errs forms.Errors) {
		view := f.Normalize()
		view.Password, view.ConfirmPassword = "", ""
		s.render(w, r, status, "register", registerView{
			Page:     s.page(r, "Register"),
			Form:     view,
			Errors:   errs,
			Strength: forms.PasswordStrength(f.Password),
		})
	}

	if errs := f.Validate(); errs.Any() {
		fail(http.StatusBadRequest, errs)
		return
	}
	f = f.Normalize()

	sid := sessionID(r.Context())
	err := s.locker.WithLock(r.Context(), session.ActionKey(sid, "register"), func(ctx context.Context) error {
		_, err := s.backend.Register(ctx, backend.RegisterRequest{
			Username:  f.Username,
			Password:  f.Password,
			IDNumber:  f.IDNumber,
			Birthdate: f.Birthdate,
		})
		return err
	})
	if err != nil {
		log.Printf("op=register username=%s request_id=%s err=%v", f.Username, GetRequestID(r.Context()), err)
		fail(failureStatus(err), forms.Errors{forms.General: actionMessage(err, registerFailedMessage)})
		return
	}

	s.flash(r, "success", "Registration successful! Please login.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r.Context())
	if u, err := s.holder.Current(r.Context(), sid); err == nil {
		s.cache.Drop(ownerFor(u))
	}
	if err := s.holder.SignOut(r.Context(), sid); err != nil {
		log.Printf("op=logout request_id=%s err=%v", GetRequestID(r.Context()), err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// actionMessage is the user-facing text for a failed action.
func actionMessage(err error, fallback string) string {
	if errors.Is(err, session.ErrLockNotAcquired) {
		return InProgressMessage
	}
	return backend.Message(err, fallback)
}

// failureStatus picks the status code a re-rendered form is served with.
func failureStatus(err error) int {
	switch code := backend.StatusCode(err); {
	case errors.Is(err, session.ErrLockNotAcquired):
		return http.StatusConflict
	case code >= 400 && code < 500:
		return code
	default:
		return http.StatusBadGateway
	}
}
