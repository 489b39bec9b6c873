package domain

import (
	"fmt"
	"time"
)

// dayLayouts lists the accepted textual date formats, tried in order.
var dayLayouts = []string{
	"2006-1-2",
	"2006.0102",
	"2006/1/2",
	"2006.1.2",
}

// CalendarDay identifies a single local calendar date.
type CalendarDay struct {
	Year  int
	Month int
	Day   int
}

// ParseDay parses a date string in one of the accepted formats
// (YYYY-M-D, YYYY.MMDD, YYYY/M/D, YYYY.M.D).
func ParseDay(s string) (CalendarDay, error) {
	for _, layout := range dayLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return DayFromTime(t), nil
		}
	}
	return CalendarDay{}, fmt.Errorf("unrecognised date %q (accepted formats: YYYY-M-D, YYYY.MMDD, YYYY/M/D, YYYY.M.D)", s)
}

// DayFromTime truncates t to its local calendar date.
func DayFromTime(t time.Time) CalendarDay {
	return CalendarDay{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Today returns the current local calendar date.
func Today() CalendarDay {
	return DayFromTime(time.Now())
}

// ISO formats the day as YYYY-MM-DD, the form used to match show entries.
func (d CalendarDay) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// FileDate formats the day as YYYY.MMDD, the form used in output file names
// and ID3 titles.
func (d CalendarDay) FileDate() string {
	return fmt.Sprintf("%04d.%02d%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight local time at the start of the day.
func (d CalendarDay) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.Local)
}

// ISOWeekday returns the ISO weekday number (1=Monday .. 7=Sunday).
func (d CalendarDay) ISOWeekday() int {
	wd := int(d.Time().Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (d CalendarDay) String() string {
	return d.ISO()
}
