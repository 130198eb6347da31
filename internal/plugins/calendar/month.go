package calendar

import "time"

// Day is one cell of the month grid.
type Day struct {
	Date    time.Time
	InMonth bool // false for the spill-over days of the adjacent months
	Today   bool
}

// Grid returns the cells for month in whole Monday-first weeks. Leading
// cells come from the previous month and trailing cells from the next one.
func Grid(year int, month time.Month, today time.Time) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	lead := mondayIndex(first.Weekday())
	trail := 6 - mondayIndex(last.Weekday())

	ty, tm, td := today.Date()
	start := first.AddDate(0, 0, -lead)
	n := lead + last.Day() + trail

	days := make([]Day, n)
	for i := range days {
		d := start.AddDate(0, 0, i)
		y, m, dd := d.Date()
		days[i] = Day{
			Date:    d,
			InMonth: m == month,
			Today:   m == month && y == ty && m == tm && dd == td,
		}
	}
	return days
}

// mondayIndex maps Monday..Sunday to 0..6.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// shiftMonth moves (year, month) by delta months, wrapping the year.
func shiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}
