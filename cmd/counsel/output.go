package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
)

func printHistory(w io.Writer, list []appointment.Appointment, today string, now time.Time) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No appointments scheduled yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tCONCERN\tSTATUS\tWHEN\tATTENDED\tBOOKED")
	for _, a := range list {
		attended := "-"
		switch {
		case a.WasAttended():
			attended = "yes"
		case appointment.CanMarkAttendance(a, today):
			attended = "can mark"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Date, a.PreferredTime, a.ConcernType.Label(), a.Status,
			appointment.Classify(a.Date, today), attended, appointment.CreatedLabel(a, now))
	}
	return tw.Flush()
}

func printQuickStats(w io.Writer, list []appointment.Appointment) {
	parts := make([]string, 0, 5)
	for _, sc := range appointment.QuickStats(list) {
		parts = append(parts, fmt.Sprintf("%s=%d", sc.Status, sc.Count))
	}
	parts = append(parts, fmt.Sprintf("Total=%d", len(list)))
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

func printAdminRows(w io.Writer, list []appointment.Appointment) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No appointments match the current filter.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTUDENT\tID NUMBER\tDATE\tTIME\tCONCERN\tSTATUS\tACTIONS")
	for _, a := range list {
		var actions []string
		for _, act := range appointment.AvailableActions(a.Status) {
			actions = append(actions, string(act.Target))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.StudentName(), a.StudentIDNumber(), a.Date, a.PreferredTime,
			a.ConcernType.Label(), a.Status, strings.Join(actions, ","))
	}
	return tw.Flush()
}
