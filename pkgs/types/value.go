package types

import "strconv"

// ValueKind discriminates the three runtime value kinds of the language.
type ValueKind int

const (
	NumberKind ValueKind = iota
	StringKind
	TimeKind
)

var kindNames = [...]string{
	NumberKind: "number",
	StringKind: "string",
	TimeKind:   "time",
}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) && int(k) >= 0 {
		return kindNames[k]
	}
	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tagged union over the language's value kinds. There is no
// implicit coercion between kinds; the operator rules in the evaluator are
// the only cross-kind behavior.
type Value struct {
	kind ValueKind
	num  int
	str  string
	time TimePosition
}

// Number wraps an integer value.
func Number(n int) Value { return Value{kind: NumberKind, num: n} }

// String wraps a text value.
func String(s string) Value { return Value{kind: StringKind, str: s} }

// Time wraps a time-position value.
func Time(t TimePosition) Value { return Value{kind: TimeKind, time: t} }

// Kind reports which variant the value holds.
func (v Value) Kind() ValueKind { return v.kind }

// Num returns the numeric payload; only meaningful when Kind is NumberKind.
func (v Value) Num() int { return v.num }

// Str returns the text payload; only meaningful when Kind is StringKind.
func (v Value) Str() string { return v.str }

// Time returns the time payload; only meaningful when Kind is TimeKind.
func (v Value) Time() TimePosition { return v.time }

// String renders the value the way script output shows it.
func (v Value) String() string {
	switch v.kind {
	case NumberKind:
		return strconv.Itoa(v.num)
	case StringKind:
		return v.str
	case TimeKind:
		return v.time.String()
	}
	return ""
}
