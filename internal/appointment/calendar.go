package appointment

import (
	"fmt"
	"time"
)

const MonthLayout = "2006-01"

// Cell is one day square of the month grid. Leading blanks have Day == 0.
type Cell struct {
	Day            int
	Date           string
	HasAppointment bool
	Count          int
	Selected       bool
	Today          bool
}

func (c Cell) Blank() bool { return c.Day == 0 }

// Month is a Sunday-first calendar grid for one month.
type Month struct {
	Year  int
	Month time.Month
	Cells []Cell
}

// BuildMonth lays out the given month with per-day appointment counts from list.
func BuildMonth(year int, month time.Month, list []Appointment, selected, today string) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	counts := make(map[string]int)
	for _, a := range list {
		if d, ok := Day(a.Date); ok {
			counts[d]++
		}
	}

	lead := int(first.Weekday())
	cells := make([]Cell, lead, lead+days)
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DayLayout)
		n := counts[date]
		cells = append(cells, Cell{
			Day:            day,
			Date:           date,
			HasAppointment: n > 0,
			Count:          n,
			Selected:       date == selected,
			Today:          date == today,
		})
	}
	return Month{Year: first.Year(), Month: first.Month(), Cells: cells}
}

// Weeks splits the grid into rows of seven, padding the last row with blanks.
func (m Month) Weeks() [][]Cell {
	var weeks [][]Cell
	for i := 0; i < len(m.Cells); i += 7 {
		end := i + 7
		row := make([]Cell, 7)
		if end > len(m.Cells) {
			end = len(m.Cells)
		}
		copy(row, m.Cells[i:end])
		weeks = append(weeks, row)
	}
	return weeks
}

func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

func (m Month) Key() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format(MonthLayout)
}

func (m Month) Prev() string {
	return time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, time.UTC).Format(MonthLayout)
}

func (m Month) Next() string {
	return time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC).Format(MonthLayout)
}

// ParseMonth reads a "2006-01" key, falling back to the month of fallback.
func ParseMonth(raw string, fallback time.Time) (int, time.Month) {
	if t, err := time.Parse(MonthLayout, raw); err == nil {
		return t.Year(), t.Month()
	}
	return fallback.Year(), fallback.Month()
}
