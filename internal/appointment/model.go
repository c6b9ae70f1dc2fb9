package appointment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// Statuses is the fixed status order used for filters, report buckets and quick stats.
var Statuses = []Status{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Color is the display colour the dashboards use for a status badge.
func (s Status) Color() string {
	switch s {
	case StatusPending:
		return "#FFA500"
	case StatusApproved:
		return "#90EE90"
	case StatusRejected:
		return "#FF6B6B"
	case StatusCancelled:
		return "#B0B0B0"
	case StatusCompleted:
		return "#4CAF50"
	default:
		return "#FFFFFF"
	}
}

// CSSClass is the lower-case status name used as a class hook in the history list.
func (s Status) CSSClass() string {
	return strings.ToLower(string(s))
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

type TimeSlot string

const (
	Slot0800 TimeSlot = "08:00 AM"
	Slot0900 TimeSlot = "09:00 AM"
	Slot1000 TimeSlot = "10:00 AM"
	Slot1100 TimeSlot = "11:00 AM"
	Slot1300 TimeSlot = "01:00 PM"
	Slot1400 TimeSlot = "02:00 PM"
	Slot1500 TimeSlot = "03:00 PM"
	Slot1600 TimeSlot = "04:00 PM"
)

// TimeSlots are the bookable preferred times. There is no noon slot.
var TimeSlots = []TimeSlot{
	Slot0800, Slot0900, Slot1000, Slot1100,
	Slot1300, Slot1400, Slot1500, Slot1600,
}

func (t TimeSlot) Valid() bool {
	for _, ts := range TimeSlots {
		if t == ts {
			return true
		}
	}
	return false
}

type Concern string

const (
	ConcernAcademic     Concern = "Academic"
	ConcernPersonal     Concern = "Personal"
	ConcernCareer       Concern = "Career"
	ConcernMentalHealth Concern = "Mental Health"
	ConcernRelationship Concern = "Relationship"
	ConcernOther        Concern = "Other"
)

var Concerns = []Concern{
	ConcernAcademic,
	ConcernPersonal,
	ConcernCareer,
	ConcernMentalHealth,
	ConcernRelationship,
	ConcernOther,
}

func (c Concern) Valid() bool {
	for _, cc := range Concerns {
		if c == cc {
			return true
		}
	}
	return false
}

// Label is the wording shown in the booking form select.
func (c Concern) Label() string {
	switch c {
	case ConcernAcademic:
		return "Academic Concerns"
	case ConcernPersonal:
		return "Personal Issues"
	case ConcernCareer:
		return "Career Guidance"
	case ConcernRelationship:
		return "Relationship Issues"
	default:
		return string(c)
	}
}

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ID is an identifier the backend may send either as a JSON string or a JSON number.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// User is the account object returned by the backend at login.
type User struct {
	UserID    ID     `json:"user_id"`
	Username  string `json:"username"`
	IDNumber  ID     `json:"id_number"`
	Birthdate string `json:"birthdate"`
	Role      Role   `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserInfo is the student summary embedded in admin listings.
type UserInfo struct {
	Username string `json:"username"`
	IDNumber ID     `json:"id_number"`
}

type Appointment struct {
	ID                 string    `json:"_id"`
	UserID             ID        `json:"user_id"`
	Date               string    `json:"date"`
	PreferredTime      TimeSlot  `json:"preferred_time"`
	ConcernType        Concern   `json:"concern_type"`
	Status             Status    `json:"status"`
	CreatedAt          string    `json:"created_at,omitempty"`
	FormattedCreatedAt string    `json:"formatted_created_at,omitempty"`
	Attended           *bool     `json:"attended,omitempty"`
	UserInfo           *UserInfo `json:"user_info,omitempty"`
}

// StudentName falls back to "Unknown" when the listing carries no user info.
func (a Appointment) StudentName() string {
	if a.UserInfo == nil || a.UserInfo.Username == "" {
		return "Unknown"
	}
	return a.UserInfo.Username
}

// StudentIDNumber falls back to "N/A" when the listing carries no user info.
func (a Appointment) StudentIDNumber() string {
	if a.UserInfo == nil || a.UserInfo.IDNumber == "" {
		return "N/A"
	}
	return a.UserInfo.IDNumber.String()
}

func (a Appointment) WasAttended() bool {
	return a.Attended != nil && *a.Attended
}
