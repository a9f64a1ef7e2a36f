package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseTime parses s as a calendar date or timestamp, detecting the layout.
// Ambiguous numeric dates such as 03/04/2024 read month first unless dayFirst is set.
// Values without a zone are taken as UTC. Empty or unparseable input reports false.
func ParseTime(s string, dayFirst bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(!dayFirst))
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// LooksLikeTime reports whether s parses as a date and is not a bare number.
// Bare numbers are left to the numeric kinds during inference.
func LooksLikeTime(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	_, ok := ParseTime(s, false)
	return ok
}

// ParseValue converts a raw text cell into the Go value stored by columns of kind k.
func ParseValue(k Kind, raw string) (any, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, false
	}
	switch k {
	case KindFloat:
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		return x, true
	case KindInt:
		if x, err := strconv.ParseInt(v, 10, 64); err == nil {
			return x, true
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil || x != math.Trunc(x) {
			return nil, false
		}
		return int64(x), true
	case KindBool:
		x, err := strconv.ParseBool(strings.ToLower(v))
		if err != nil {
			return nil, false
		}
		return x, true
	case KindTime:
		return ParseTime(v, false)
	case KindString:
		return strings.ToValidUTF8(v, "?"), true
	}
	return nil, false
}

// TimeAt reads cell i of c as a time. Time columns are read directly, string
// columns are parsed with ParseTime; every other kind counts as missing.
func TimeAt(c Column, i int, dayFirst bool) (time.Time, bool) {
	switch col := c.(type) {
	case *TimeColumn:
		t, ok := col.Get(i)
		if !ok {
			return time.Time{}, false
		}
		return t.UTC(), true
	case *StringColumn:
		s, ok := col.Get(i)
		if !ok {
			return time.Time{}, false
		}
		return ParseTime(s, dayFirst)
	}
	return time.Time{}, false
}

// FloatAt reads cell i of a numeric column as float64.
func FloatAt(c Column, i int) (float64, bool) {
	switch col := c.(type) {
	case *FloatColumn:
		return col.Get(i)
	case *IntColumn:
		v, ok := col.Get(i)
		return float64(v), ok
	case *BoolColumn:
		v, ok := col.Get(i)
		return float64(boolToInt(v)), ok
	}
	return 0, false
}

// StringAt formats cell i of any column as text.
func StringAt(c Column, i int) (string, bool) {
	switch col := c.(type) {
	case *StringColumn:
		return col.Get(i)
	case *FloatColumn:
		v, ok := col.Get(i)
		return strconv.FormatFloat(v, 'g', -1, 64), ok
	case *IntColumn:
		v, ok := col.Get(i)
		return strconv.FormatInt(v, 10), ok
	case *BoolColumn:
		v, ok := col.Get(i)
		return strconv.FormatBool(v), ok
	case *TimeColumn:
		v, ok := col.Get(i)
		return v.Format(time.RFC3339), ok
	}
	return "", false
}
