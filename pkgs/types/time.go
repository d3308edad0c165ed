package types

import (
	"fmt"
	"strconv"
	"strings"
)

// TimePosition is a position or duration inside a clip, expressed as
// minutes and seconds. It is always kept normalized: seconds < 60, both
// fields non-negative.
type TimePosition struct {
	Minutes int
	Seconds int
}

// NewTime constructs a normalized TimePosition from a minute/second pair.
// Seconds >= 60 roll over into minutes; negative components are rejected.
func NewTime(minutes, seconds int) (TimePosition, error) {
	t := TimePosition{Minutes: minutes, Seconds: seconds}
	if t.Seconds >= 60 {
		t.Minutes += t.Seconds / 60
		t.Seconds %= 60
	}
	if t.Minutes < 0 || t.Seconds < 0 {
		return TimePosition{}, fmt.Errorf("time cannot be negative: %d:%d", minutes, seconds)
	}
	return t, nil
}

// ParseTime parses a "MM:SS" literal. A literal without a colon, or with
// non-numeric parts, is rejected.
func ParseTime(s string) (TimePosition, error) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return TimePosition{}, fmt.Errorf("invalid time format: %s", s)
	}
	minutes, err := strconv.Atoi(s[:colon])
	if err != nil {
		return TimePosition{}, fmt.Errorf("invalid time format: %s", s)
	}
	seconds, err := strconv.Atoi(s[colon+1:])
	if err != nil {
		return TimePosition{}, fmt.Errorf("invalid time format: %s", s)
	}
	return NewTime(minutes, seconds)
}

// Add returns the sum of the two positions, renormalized.
func (t TimePosition) Add(other TimePosition) TimePosition {
	sum, _ := NewTime(0, t.TotalSeconds()+other.TotalSeconds())
	return sum
}

// Scale multiplies the position by an integer factor, renormalized.
func (t TimePosition) Scale(n int) (TimePosition, error) {
	return NewTime(0, t.TotalSeconds()*n)
}

// Equal compares two positions by total seconds.
func (t TimePosition) Equal(other TimePosition) bool {
	return t.TotalSeconds() == other.TotalSeconds()
}

// TotalSeconds returns the position in whole seconds.
func (t TimePosition) TotalSeconds() int {
	return t.Minutes*60 + t.Seconds
}

// String renders the position as "M:SS" with zero-padded seconds.
func (t TimePosition) String() string {
	return fmt.Sprintf("%d:%02d", t.Minutes, t.Seconds)
}
