package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/backend"
	"github.com/hackgods/counseling-scheduler/internal/session"
)

// Backend is the subset of the backend client the web frontend calls.
type Backend interface {
	Login(ctx context.Context, req backend.LoginRequest) (appointment.User, error)
	Register(ctx context.Context, req backend.RegisterRequest) (string, error)
	ListAppointments(ctx context.Context, userID appointment.ID) ([]appointment.Appointment, error)
	CreateAppointment(ctx context.Context, req backend.CreateAppointmentRequest) (string, error)
	MarkAttended(ctx context.Context, id string, attended bool) (string, error)
	ListAllAppointments(ctx context.Context) ([]appointment.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status appointment.Status) (string, error)
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Backend      Backend
	Holder       *session.Holder
	Locker       session.Locker
	Cache        *appointment.Cache
	Env          string
	Version      string
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
	CSRFKey      []byte // nil disables CSRF checks
	RateLimit    float64
	RateBurst    int
	Now          func() time.Time // current time in the display zone
}

type cookieConfig struct {
	name   string
	secure bool
	ttl    time.Duration
}

// Server holds the handlers' collaborators.
type Server struct {
	backend Backend
	holder  *session.Holder
	locker  session.Locker
	cache   *appointment.Cache
	cookie  cookieConfig
	now     func() time.Time
}

func NewRouter(cfg RouterConfig) http.Handler {
	s := &Server{
		backend: cfg.Backend,
		holder:  cfg.Holder,
		locker:  cfg.Locker,
		cache:   cfg.Cache,
		cookie: cookieConfig{
			name:   cfg.CookieName,
			secure: cfg.CookieSecure,
			ttl:    cfg.SessionTTL,
		},
		now: cfg.Now,
	}
	if s.cookie.name == "" {
		s.cookie.name = "counsel_session"
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.locker == nil {
		s.locker = session.NewLocalLocker()
	}
	if s.cache == nil {
		s.cache = appointment.NewCache(0)
	}

	limiter := NewRateLimiter(cfg.RateLimit, cfg.RateBurst)

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	health := NewHealthHandler(cfg.Holder, cfg.Backend, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Group(func(r chi.Router) {
		r.Use(SecurityHeaders)
		r.Use(s.sessionMiddleware)
		r.Use(s.csrfMiddleware(cfg.CSRFKey))

		r.Get("/", s.loginPage)
		r.Get("/register", s.registerPage)
		r.Get("/info", s.infoPage)
		r.Post("/logout", s.logout)

		r.With(limiter.Limit(s.loginLimited)).Post("/login", s.login)
		r.With(limiter.Limit(s.registerLimited)).Post("/register", s.register)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/dashboard", s.dashboard)
			r.Post("/appointments", s.bookAppointment)
			r.Post("/appointments/{id}/attended", s.markAttended)

			r.Route("/adminDashboard", func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/", s.adminDashboard)
				r.Post("/appointments/{id}/status", s.updateStatus)
				r.Get("/report", s.report)
			})
		})
	})

	return r
}
