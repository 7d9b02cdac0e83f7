// Package period derives evaluation windows from calendar time. Facility
// evaluations run once per quarter, management evaluations once per month;
// eligibility checks ask whether a record already falls inside the current
// window.
package period

import "time"

const monthsPerQuarter = 3

// Quarter returns the calendar quarter (1..4) the given time falls in.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/monthsPerQuarter + 1
}

// QuarterRange returns the inclusive start and exclusive end of the quarter
// containing t, in t's location.
func QuarterRange(t time.Time) (start, end time.Time) {
	quarter := Quarter(t)
	startMonth := time.Month((quarter-1)*monthsPerQuarter + 1)

	start = time.Date(t.Year(), startMonth, 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, monthsPerQuarter, 0)

	return start, end
}

// MonthRange returns the inclusive start and exclusive end of the month
// containing t, in t's location.
func MonthRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0)

	return start, end
}
