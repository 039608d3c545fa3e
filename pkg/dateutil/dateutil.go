package dateutil

import "time"

// ObservationLayout is the date layout used by historical series files.
const ObservationLayout = "2006-01-02"

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing date.
func MonthOf(date time.Time) MonthKey {
	return MonthKey{Year: date.Year(), Month: date.Month()}
}

// Before reports whether k is an earlier month than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Next returns the following calendar month.
func (k MonthKey) Next() MonthKey {
	if k.Month == time.December {
		return MonthKey{Year: k.Year + 1, Month: time.January}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// MonthsBetween counts whole calendar months from a to b (negative if b is earlier).
func MonthsBetween(a, b MonthKey) int {
	return (b.Year-a.Year)*12 + int(b.Month) - int(a.Month)
}

// InRange reports whether date falls within [start, end]. A zero bound is open.
func InRange(date, start, end time.Time) bool {
	if !start.IsZero() && date.Before(start) {
		return false
	}
	if !end.IsZero() && date.After(end) {
		return false
	}
	return true
}

// ParseObservationDate parses a YYYY-MM-DD observation date in UTC.
func ParseObservationDate(s string) (time.Time, error) {
	return time.ParseInLocation(ObservationLayout, s, time.UTC)
}
