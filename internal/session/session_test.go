package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryStore()
	m.now = func() time.Time { return now }

	_ = m.Set(ctx, "a", "1", time.Minute)
	_ = m.Set(ctx, "b", "2", 0)

	if v, err := m.Get(ctx, "a"); err != nil || v != "1" {
		t.Fatalf("Get(a) = %q, %v", v, err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(a) after expiry = %v", err)
	}
	if v, _ := m.Get(ctx, "b"); v != "2" {
		t.Fatal("key without ttl expired")
	}

	_ = m.Set(ctx, "c", "3", time.Second)
	now = now.Add(time.Hour)
	if n := m.Sweep(); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
}

func TestHolderSignInCurrentSignOut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	h := NewHolder(store, time.Hour)
	sid := NewID()

	if _, err := h.Current(ctx, sid); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Current before sign in = %v", err)
	}

	u := appointment.User{UserID: "9", Username: "ana", IDNumber: "2024001", Role: appointment.RoleStudent}
	if err := h.SignIn(ctx, sid, u); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	got, err := h.Current(ctx, sid)
	if err != nil || got != u {
		t.Fatalf("Current = %+v, %v", got, err)
	}

	_ = store.Set(ctx, key(sid, keyLegacyUser), "{}", 0)
	if err := h.SignOut(ctx, sid); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	for _, k := range []string{KeyCurrentUser, KeyIsAuthenticated, keyLegacyUser} {
		if _, err := store.Get(ctx, key(sid, k)); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s still present after sign out", k)
		}
	}
	if _, err := h.Current(ctx, sid); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Current after sign out = %v", err)
	}
}

func TestHolderRequiresTrueFlag(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	h := NewHolder(store, 0)

	_ = h.SignIn(ctx, "s", appointment.User{Username: "x"})
	_ = store.Set(ctx, key("s", KeyIsAuthenticated), "false", 0)
	if _, err := h.Current(ctx, "s"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("flag false: %v", err)
	}

	_ = store.Set(ctx, key("s", KeyIsAuthenticated), "true", 0)
	_ = store.Delete(ctx, key("s", KeyCurrentUser))
	if _, err := h.Current(ctx, "s"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("user missing: %v", err)
	}

	_ = store.Set(ctx, key("s", KeyCurrentUser), "{not json", 0)
	if _, err := h.Current(ctx, "s"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("corrupt user: %v", err)
	}
}

func TestHolderSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(NewMemoryStore(), 0)
	_ = h.SignIn(ctx, "one", appointment.User{Username: "a"})
	if _, err := h.Current(ctx, "two"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatal("session two sees session one")
	}
}

func TestFlash(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(NewMemoryStore(), 0)

	if _, ok := h.PopFlash(ctx, "s"); ok {
		t.Fatal("unexpected flash")
	}
	_ = h.SetFlash(ctx, "s", Flash{Kind: "success", Message: "Appointment scheduled successfully!"})
	f, ok := h.PopFlash(ctx, "s")
	if !ok || f.Message != "Appointment scheduled successfully!" {
		t.Fatalf("PopFlash = %+v, %v", f, ok)
	}
	if _, ok := h.PopFlash(ctx, "s"); ok {
		t.Fatal("flash not cleared")
	}
}

func TestLocalLocker(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()
	k := ActionKey("s", "book")

	entered := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.WithLock(ctx, k, func(context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	err := l.WithLock(ctx, k, func(context.Context) error { return nil })
	if !errors.Is(err, ErrLockNotAcquired) {
		t.Fatalf("second WithLock = %v", err)
	}
	if err := l.WithLock(ctx, ActionKey("s", "attend"), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("other action blocked: %v", err)
	}

	close(release)
	wg.Wait()

	want := errors.New("boom")
	if err := l.WithLock(ctx, k, func(context.Context) error { return want }); !errors.Is(err, want) {
		t.Fatalf("WithLock after release = %v", err)
	}
}
