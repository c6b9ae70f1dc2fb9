package appointment

import (
	"fmt"
	"time"
)

type ReportType string

const (
	ReportAll      ReportType = "all"
	ReportApproved ReportType = "approved"
	ReportRejected ReportType = "rejected"
	ReportFiltered ReportType = "filtered"
)

var ReportTypes = []ReportType{ReportAll, ReportApproved, ReportRejected, ReportFiltered}

// ParseReportType defaults to ReportAll.
func ParseReportType(raw string) ReportType {
	for _, rt := range ReportTypes {
		if ReportType(raw) == rt {
			return rt
		}
	}
	return ReportAll
}

func (r ReportType) Label() string {
	switch r {
	case ReportApproved:
		return "Approved Only"
	case ReportRejected:
		return "Rejected Only"
	case ReportFiltered:
		return "Current Filter"
	default:
		return "All Appointments"
	}
}

// Title names the report; the filtered report mentions the active status filter.
func (r ReportType) Title(status StatusFilter) string {
	switch r {
	case ReportAll:
		return "All Appointments"
	case ReportApproved:
		return "Approved Appointments"
	case ReportRejected:
		return "Rejected Appointments"
	case ReportFiltered:
		if status == "" {
			status = FilterAll
		}
		return fmt.Sprintf("Filtered Appointments (%s)", status)
	default:
		return "Appointments Report"
	}
}

// Select picks the report subset: whole list, one status, or the currently filtered list.
func (r ReportType) Select(all, filtered []Appointment) []Appointment {
	switch r {
	case ReportApproved:
		return WithStatus(all, StatusApproved)
	case ReportRejected:
		return WithStatus(all, StatusRejected)
	case ReportFiltered:
		return Apply(filtered, Filter{Status: FilterAll})
	default:
		return Apply(all, Filter{Status: FilterAll})
	}
}

type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// Statistics counts list per status, one bucket per entry of Statuses, in that order.
// Appointments with a status outside Statuses are not counted.
func Statistics(list []Appointment) []StatusCount {
	stats := make([]StatusCount, 0, len(Statuses))
	for _, s := range Statuses {
		stats = append(stats, StatusCount{Status: s, Count: CountStatus(list, s)})
	}
	return stats
}

// QuickStats are the four dashboard counters over the whole list.
func QuickStats(list []Appointment) []StatusCount {
	order := []Status{StatusPending, StatusApproved, StatusCompleted, StatusRejected}
	stats := make([]StatusCount, 0, len(order))
	for _, s := range order {
		stats = append(stats, StatusCount{Status: s, Count: CountStatus(list, s)})
	}
	return stats
}

type Report struct {
	Type         ReportType    `json:"type"`
	Title        string        `json:"title"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Total        int           `json:"total"`
	Appointments []Appointment `json:"appointments"`
	Statistics   []StatusCount `json:"statistics"`
}

// BuildReport assembles the report for rt over the cached list and the current filter.
func BuildReport(rt ReportType, all []Appointment, f Filter, now time.Time) Report {
	subset := rt.Select(all, Apply(all, f))
	return Report{
		Type:         rt,
		Title:        rt.Title(f.Status),
		GeneratedAt:  now,
		Total:        len(subset),
		Appointments: subset,
		Statistics:   Statistics(subset),
	}
}

// Filename is the download name for a report generated at now.
func (r Report) Filename(ext string) string {
	return fmt.Sprintf("counseling_report_%s_%s.%s", r.Type, Today(r.GeneratedAt), ext)
}
