package ner

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arnix/ner-radio/internal/domain"
)

// ScheduleOptions controls how the weekly schedule text is interpreted.
type ScheduleOptions struct {
	// LegacyMonSatRange expands the Monday-through-Saturday range to
	// {1,2,3,4,6}, omitting Friday, as the historical implementation did.
	// The corrected expansion includes Friday.
	LegacyMonSatRange bool
}

var weekdayGlyphs = map[string]int{
	"一": 1, "二": 2, "三": 3, "四": 4, "五": 5, "六": 6, "日": 7,
}

type rangeExpansion struct {
	from, to string
}

// rangeTable lists the literal weekday-range substitutions, applied in order
// after separators are normalised.
func rangeTable(legacyMonSat bool) []rangeExpansion {
	monSat := "1,2,3,4,5,6"
	if legacyMonSat {
		monSat = "1,2,3,4,6"
	}
	return []rangeExpansion{
		{"一-二", "1,2"},
		{"二-三", "2,3"},
		{"三-四", "3,4"},
		{"四-五", "4,5"},
		{"五-六", "5,6"},
		{"六-日", "6,7"},
		{"五-日", "5,6,7"},
		{"一-三-三", "1,2,3"},
		{"一-三", "1,2,3"},
		{"一-四", "1,2,3,4"},
		{"一-五", "1,2,3,4,5"},
		{"一-六", monSat},
		{"一-七", "1,2,3,4,5,6,7"},
	}
}

// ParseBroadcastDays derives the weekly broadcast days from a free-text
// schedule description such as "每週一、三、五" or "每週一至五".
//
// The parse is idempotent over its own numeric output: feeding a produced
// day list back in yields the same set.
func ParseBroadcastDays(text string, opts ScheduleOptions) (domain.BroadcastDaySet, error) {
	s := text
	for _, filler := range []string{"週", "周", "每"} {
		s = strings.ReplaceAll(s, filler, "")
	}
	s = strings.ReplaceAll(s, "至", "-")
	s = strings.ReplaceAll(s, "~", "-")
	s = strings.ReplaceAll(s, "、", ",")

	for _, r := range rangeTable(opts.LegacyMonSatRange) {
		s = strings.ReplaceAll(s, r.from, r.to)
	}

	set := domain.NewBroadcastDaySet()
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if day, ok := weekdayGlyphs[token]; ok {
			set.Add(day)
			continue
		}
		day, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("unrecognised schedule token %q in %q", token, text)
		}
		set.Add(day)
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("no broadcast days found in schedule %q", text)
	}
	return set, nil
}

// FindShowOnDate returns the first show entry broadcast on the given local
// calendar day, or nil when the program had no broadcast that day. Absence
// is a valid outcome, not an error.
func FindShowOnDate(shows []*domain.ShowEntry, day domain.CalendarDay) *domain.ShowEntry {
	want := day.ISO()
	for _, show := range shows {
		if show == nil {
			continue
		}
		if time.Unix(show.Date, 0).In(time.Local).Format("2006-01-02") == want {
			return show
		}
	}
	return nil
}
