package diary

import "time"

// Clock is the tagged variant over the three levels of time context a
// diary entry can carry: an exact date+HH:MM, a date alone, or nothing.
type Clock struct {
	kind         clockKind
	date         time.Time
	hour, minute int
}

type clockKind int

const (
	clockNone clockKind = iota
	clockDateOnly
	clockExact
)

// ExactClock is a reference date plus a parsed HH:MM timestamp.
func ExactClock(date time.Time, hour, minute int) Clock {
	return Clock{kind: clockExact, date: date, hour: hour, minute: minute}
}

// DateClock is a reference date with no captured time of day.
func DateClock(date time.Time) Clock {
	return Clock{kind: clockDateOnly, date: date}
}

// NoClock means the document had no date context at all.
func NoClock() Clock {
	return Clock{kind: clockNone}
}

// Resolve collapses the variant to a concrete creation time: the exact
// minute when both parts are known, start of day with only a date, and the
// current wall clock otherwise. Seconds are always zero for parsed times.
func (c Clock) Resolve(now func() time.Time) time.Time {
	switch c.kind {
	case clockExact:
		return time.Date(c.date.Year(), c.date.Month(), c.date.Day(),
			c.hour, c.minute, 0, 0, c.date.Location())
	case clockDateOnly:
		return time.Date(c.date.Year(), c.date.Month(), c.date.Day(),
			0, 0, 0, 0, c.date.Location())
	default:
		return now()
	}
}
