package domain

import "time"

// Day returns midnight UTC of the calendar day t falls on in UTC.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// IsBusinessDay reports whether t falls Monday through Friday. Holidays are
// not observed.
func IsBusinessDay(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// PrevBusinessDay returns the last business day strictly before t.
func PrevBusinessDay(t time.Time) time.Time {
	d := Day(t).AddDate(0, 0, -1)
	for !IsBusinessDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// BusinessDays lists the business days in [from, to].
func BusinessDays(from, to time.Time) []time.Time {
	var out []time.Time
	end := Day(to)
	for d := Day(from); !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			out = append(out, d)
		}
	}
	return out
}

// BusinessDaysEnding lists the n business days ending on end, oldest first.
// end must itself be a business day.
func BusinessDaysEnding(end time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	out := make([]time.Time, n)
	d := Day(end)
	for i := n - 1; i >= 0; i-- {
		out[i] = d
		if i > 0 {
			d = PrevBusinessDay(d)
		}
	}
	return out
}
