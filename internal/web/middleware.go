package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/session"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	sessionIDKey contextKey = "session_id"
	userKey      contextKey = "user"
)

// RequestIDMiddleware adds a unique request ID to each request context
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware logs HTTP requests with method, path, status, duration, and request ID
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		log.Printf(
			"method=%s path=%s status=%d duration=%s request_id=%s",
			r.Method,
			r.URL.Path,
			wrapped.statusCode,
			time.Since(start),
			GetRequestID(r.Context()),
		)
	})
}

// SecurityHeaders sets the baseline response headers for server-rendered pages.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func sessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey).(string)
	return sid
}

func currentUser(ctx context.Context) (appointment.User, bool) {
	u, ok := ctx.Value(userKey).(appointment.User)
	return u, ok
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// sessionMiddleware makes sure every request carries a session id, issuing a cookie when needed.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(s.cookie.name); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = session.NewID()
			s.setSessionCookie(w, sid)
		}
		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sid string) {
	c := &http.Cookie{
		Name:     s.cookie.name,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookie.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.cookie.ttl > 0 {
		c.MaxAge = int(s.cookie.ttl.Seconds())
	}
	http.SetCookie(w, c)
}

// requireAuth sends anonymous visitors back to the login page.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := s.holder.Current(r.Context(), sessionID(r.Context()))
		if errors.Is(err, session.ErrNotAuthenticated) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if err != nil {
			log.Printf("op=load_session request_id=%s err=%v", GetRequestID(r.Context()), err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin must run after requireAuth. Non-admins get the access denied page,
// which sends them on to their own dashboard.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(r.Context())
		if !ok || !u.IsAdmin() {
			s.render(w, r, http.StatusForbidden, "denied", deniedView{
				Page:     s.page(r, "Access denied"),
				Message:  AccessDeniedMessage,
				Redirect: "/dashboard",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// csrfMiddleware protects form posts. With no key configured it is a no-op.
func (s *Server) csrfMiddleware(key []byte) func(http.Handler) http.Handler {
	if len(key) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	protect := csrf.Protect(
		key,
		csrf.Secure(s.cookie.secure),
		csrf.Path("/"),
		csrf.CookieName("counsel_csrf"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("op=csrf request_id=%s reason=%v", GetRequestID(r.Context()), csrf.FailureReason(r))
			s.render(w, r, http.StatusForbidden, "denied", deniedView{
				Page:     s.page(r, "Form expired"),
				Message:  "Your form has expired. Please go back, reload the page and try again.",
				Redirect: "/",
			})
		})),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.cookie.secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			h.ServeHTTP(w, r)
		})
	}
}
