package domain

import (
	"fmt"
	"sort"
	"strings"
)

// BroadcastDaySet is the set of ISO weekday numbers (1=Monday .. 7=Sunday)
// on which a program regularly airs.
type BroadcastDaySet map[int]struct{}

// NewBroadcastDaySet builds a set from the given weekday numbers.
func NewBroadcastDaySet(days ...int) BroadcastDaySet {
	s := make(BroadcastDaySet, len(days))
	for _, d := range days {
		s.Add(d)
	}
	return s
}

// Add inserts a weekday number into the set.
func (s BroadcastDaySet) Add(day int) {
	s[day] = struct{}{}
}

// Contains reports whether the set includes the given ISO weekday number.
func (s BroadcastDaySet) Contains(day int) bool {
	_, ok := s[day]
	return ok
}

// Days returns the weekday numbers in ascending order.
func (s BroadcastDaySet) Days() []int {
	days := make([]int, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

func (s BroadcastDaySet) String() string {
	parts := make([]string, 0, len(s))
	for _, d := range s.Days() {
		parts = append(parts, fmt.Sprintf("%d", d))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
