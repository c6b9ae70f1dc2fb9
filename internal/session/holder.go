package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
)

const (
	KeyCurrentUser     = "currentUser"
	KeyIsAuthenticated = "isAuthenticated"
	KeyFlash           = "flash"

	// keyLegacyUser is only ever deleted, for sessions written by older clients.
	keyLegacyUser = "user"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Flash is a one-shot message shown on the next page render.
type Flash struct {
	Kind    string `json:"kind"` // success, error, info
	Message string `json:"message"`
}

// Holder reads and writes the signed-in user for a session id.
type Holder struct {
	store Store
	ttl   time.Duration
}

func NewHolder(store Store, ttl time.Duration) *Holder {
	return &Holder{store: store, ttl: ttl}
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

func key(sid, name string) string {
	return fmt.Sprintf("session:%s:%s", sid, name)
}

// SignIn stores the user and the authenticated flag for sid.
func (h *Holder) SignIn(ctx context.Context, sid string, u appointment.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := h.store.Set(ctx, key(sid, KeyCurrentUser), string(raw), h.ttl); err != nil {
		return fmt.Errorf("store current user: %w", err)
	}
	if err := h.store.Set(ctx, key(sid, KeyIsAuthenticated), "true", h.ttl); err != nil {
		return fmt.Errorf("store auth flag: %w", err)
	}
	return nil
}

// Current returns the signed-in user. Both keys must be present and the flag must be "true".
func (h *Holder) Current(ctx context.Context, sid string) (appointment.User, error) {
	if sid == "" {
		return appointment.User{}, ErrNotAuthenticated
	}
	flag, err := h.store.Get(ctx, key(sid, KeyIsAuthenticated))
	if errors.Is(err, ErrNotFound) || (err == nil && flag != "true") {
		return appointment.User{}, ErrNotAuthenticated
	}
	if err != nil {
		return appointment.User{}, fmt.Errorf("load auth flag: %w", err)
	}

	raw, err := h.store.Get(ctx, key(sid, KeyCurrentUser))
	if errors.Is(err, ErrNotFound) {
		return appointment.User{}, ErrNotAuthenticated
	}
	if err != nil {
		return appointment.User{}, fmt.Errorf("load current user: %w", err)
	}

	var u appointment.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return appointment.User{}, fmt.Errorf("%w: corrupt user record: %v", ErrNotAuthenticated, err)
	}
	return u, nil
}

// SignOut removes every auth key for sid.
func (h *Holder) SignOut(ctx context.Context, sid string) error {
	err := h.store.Delete(ctx,
		key(sid, KeyCurrentUser),
		key(sid, KeyIsAuthenticated),
		key(sid, keyLegacyUser),
	)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (h *Holder) SetFlash(ctx context.Context, sid string, f Flash) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return h.store.Set(ctx, key(sid, KeyFlash), string(raw), h.ttl)
}

// PopFlash returns and clears the pending flash. ok is false when there is none.
func (h *Holder) PopFlash(ctx context.Context, sid string) (f Flash, ok bool) {
	raw, err := h.store.Get(ctx, key(sid, KeyFlash))
	if err != nil {
		return Flash{}, false
	}
	_ = h.store.Delete(ctx, key(sid, KeyFlash))
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return Flash{}, false
	}
	return f, true
}

func (h *Holder) Ping(ctx context.Context) error {
	return h.store.Ping(ctx)
}
