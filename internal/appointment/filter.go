package appointment

import "strings"

// StatusFilter is either FilterAll or one concrete Status.
type StatusFilter string

const FilterAll StatusFilter = "All"

// StatusFilterOptions lists the filter choices in display order.
func StatusFilterOptions() []StatusFilter {
	opts := make([]StatusFilter, 0, len(Statuses)+1)
	opts = append(opts, FilterAll)
	for _, s := range Statuses {
		opts = append(opts, StatusFilter(s))
	}
	return opts
}

// ParseStatusFilter maps unknown or empty input to FilterAll.
func ParseStatusFilter(raw string) StatusFilter {
	raw = strings.TrimSpace(raw)
	if s := Status(raw); s.Valid() {
		return StatusFilter(s)
	}
	return FilterAll
}

func (f StatusFilter) IsAll() bool { return f == FilterAll || f == "" }

func (f StatusFilter) Matches(s Status) bool {
	return f.IsAll() || Status(f) == s
}

// Filter selects appointments by status and calendar day. Zero-valued fields are inactive.
type Filter struct {
	Status StatusFilter
	Day    string
}

// Matches is the AND of every active predicate.
func (f Filter) Matches(a Appointment) bool {
	if !f.Status.Matches(a.Status) {
		return false
	}
	if f.Day != "" {
		d, ok := Day(a.Date)
		if !ok || d != f.Day {
			return false
		}
	}
	return true
}

// Apply returns the matching appointments in their original order.
// The input is never modified and the result never aliases it.
func Apply(list []Appointment, f Filter) []Appointment {
	out := make([]Appointment, 0, len(list))
	for _, a := range list {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

func WithStatus(list []Appointment, s Status) []Appointment {
	return Apply(list, Filter{Status: StatusFilter(s)})
}

func OnDay(list []Appointment, day string) []Appointment {
	if day == "" {
		return []Appointment{}
	}
	return Apply(list, Filter{Status: FilterAll, Day: day})
}

func HasAppointmentOn(list []Appointment, day string) bool {
	for _, a := range list {
		if d, ok := Day(a.Date); ok && d == day {
			return true
		}
	}
	return false
}

func CountStatus(list []Appointment, s Status) int {
	n := 0
	for _, a := range list {
		if a.Status == s {
			n++
		}
	}
	return n
}

func Find(list []Appointment, id string) (Appointment, bool) {
	for _, a := range list {
		if a.ID == id {
			return a, true
		}
	}
	return Appointment{}, false
}
