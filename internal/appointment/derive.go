package appointment

import (
	"strings"
	"time"
)

// DayLayout is the ISO calendar day format the backend and the date inputs use.
const DayLayout = "2006-01-02"

type Bucket int

const (
	BucketUnknown Bucket = iota
	BucketPast
	BucketToday
	BucketFuture
)

func (b Bucket) String() string {
	switch b {
	case BucketPast:
		return "past"
	case BucketToday:
		return "today"
	case BucketFuture:
		return "future"
	default:
		return "unknown"
	}
}

// Today returns the ISO day of now in now's location.
func Today(now time.Time) string {
	return now.Format(DayLayout)
}

// layouts the backend has been seen to send for the appointment date.
var dayLayouts = []string{
	DayLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	time.RFC1123,
	time.RFC1123Z,
}

// Day normalises a backend date string to its ISO day.
// The second return value is false when the string is not a recognised date.
func Day(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DayLayout), true
		}
	}
	return "", false
}

// Classify places date relative to today. Both must be ISO days (or parseable by Day);
// anything malformed yields BucketUnknown.
func Classify(date, today string) Bucket {
	d, ok := Day(date)
	if !ok {
		return BucketUnknown
	}
	t, ok := Day(today)
	if !ok {
		return BucketUnknown
	}
	// ISO days order lexically.
	switch {
	case d == t:
		return BucketToday
	case d > t:
		return BucketFuture
	default:
		return BucketPast
	}
}

func IsToday(date, today string) bool  { return Classify(date, today) == BucketToday }
func IsFuture(date, today string) bool { return Classify(date, today) == BucketFuture }
func IsPast(date, today string) bool   { return Classify(date, today) == BucketPast }

// CanMarkAttendance reports whether the attended control is offered for a.
// It depends on the normalised day only: every status is markable on its own day.
func CanMarkAttendance(a Appointment, today string) bool {
	t, ok := Day(today)
	if !ok {
		return false
	}
	d, ok := Day(a.Date)
	return ok && d == t
}

const createdLabelLayout = "January 2, 2006 at 03:04 PM"

var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
}

// CreatedLabel renders when the appointment was booked. A backend-formatted value wins;
// an unparseable or missing created_at falls back to now.
func CreatedLabel(a Appointment, now time.Time) string {
	if a.FormattedCreatedAt != "" {
		return a.FormattedCreatedAt
	}
	raw := strings.TrimSpace(a.CreatedAt)
	if strings.Contains(raw, " at ") || strings.HasSuffix(raw, "AM") || strings.HasSuffix(raw, "PM") {
		return raw
	}
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(now.Location()).Format(createdLabelLayout)
		}
	}
	return now.Format(createdLabelLayout)
}

// LongDate formats an appointment date as "Monday, January 2, 2006" for the admin list.
// Unparseable input is returned unchanged.
func LongDate(date string) string {
	d, ok := Day(date)
	if !ok {
		return date
	}
	t, _ := time.Parse(DayLayout, d)
	return t.Format("Monday, January 2, 2006")
}
