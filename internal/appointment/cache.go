package appointment

import (
	"sync"
	"time"
)

// OwnerAll keys the admin list of every appointment.
const OwnerAll = "all"

type cacheEntry struct {
	list      []Appointment
	fetchedAt time.Time
}

// Cache holds the last fetched list per owner. Entries are only ever replaced
// wholesale or mapped into a new slice; readers get copies.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

// NewCache returns a cache whose entries go stale after ttl. A ttl <= 0 never expires.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Replace stores a copy of list as the owner's authoritative list.
func (c *Cache) Replace(owner string, list []Appointment) {
	cp := make([]Appointment, len(list))
	copy(cp, list)

	c.mu.Lock()
	c.entries[owner] = cacheEntry{list: cp, fetchedAt: c.now()}
	c.mu.Unlock()
}

// Snapshot returns a copy of the owner's list and whether a fresh entry exists.
func (c *Cache) Snapshot(owner string) ([]Appointment, bool) {
	c.mu.RLock()
	e, ok := c.entries[owner]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.fetchedAt) > c.ttl {
		return nil, false
	}
	cp := make([]Appointment, len(e.list))
	copy(cp, e.list)
	return cp, true
}

// SetStatus maps the owner's list to a new slice in which the appointment with id
// carries status. It returns ErrAppointmentNotFound when no cached entry has id.
func (c *Cache) SetStatus(owner, id string, status Status) error {
	return c.patch(owner, id, func(a Appointment) Appointment {
		a.Status = status
		return a
	})
}

func (c *Cache) SetAttended(owner, id string, attended bool) error {
	return c.patch(owner, id, func(a Appointment) Appointment {
		v := attended
		a.Attended = &v
		return a
	})
}

func (c *Cache) patch(owner, id string, fn func(Appointment) Appointment) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[owner]
	if !ok {
		return ErrAppointmentNotFound
	}
	found := false
	next := make([]Appointment, len(e.list))
	for i, a := range e.list {
		if a.ID == id {
			a = fn(a)
			found = true
		}
		next[i] = a
	}
	if !found {
		return ErrAppointmentNotFound
	}
	c.entries[owner] = cacheEntry{list: next, fetchedAt: e.fetchedAt}
	return nil
}

func (c *Cache) Drop(owner string) {
	c.mu.Lock()
	delete(c.entries, owner)
	c.mu.Unlock()
}
