package ical

import (
	"strings"
)

// Date, time and duration shapes of RFC 5545 sections 3.3.4 to 3.3.14.
// Only the shape is checked, ranges such as hour 25 are left to callers.

// ParseTime parses a TIME value.
//
//	time         = time-hour time-minute time-second [time-utc]
//	time-hour    = 2DIGIT        ;00-23
//	time-minute  = 2DIGIT        ;00-59
//	time-second  = 2DIGIT        ;00-60
//	time-utc     = "Z"
func ParseTime(s string) (Time, string, error) {
	rest := s
	for _, rule := range []string{"time-hour", "time-minute", "time-second"} {
		_, next, ok := fixed(rest, 2, isDigit)
		if !ok {
			return "", s, syntaxError(rule, s, rest, "2 digits")
		}
		rest = next
	}
	rest = strings.TrimPrefix(rest, "Z")
	return Time(s[:len(s)-len(rest)]), rest, nil
}

// ParseDateTime parses a DATE-TIME value.
//
//	date-time = date "T" time ;As specified in the DATE and TIME
//	                          ;value definitions
func ParseDateTime(s string) (DateTime, string, error) {
	_, rest, err := ParseDate(s)
	if err != nil {
		return "", s, err
	}
	if !strings.HasPrefix(rest, "T") {
		return "", s, syntaxError("date-time", s, rest, `"T"`)
	}
	_, next, err := ParseTime(rest[1:])
	if err != nil {
		return "", s, within(err, s, rest[1:])
	}
	return DateTime(s[:len(s)-len(next)]), next, nil
}

// durUnit matches 1*DIGIT followed by unit.
func durUnit(s string, unit byte) (string, bool) {
	n := span(s, isDigit)
	if n == 0 || len(s) == n || s[n] != unit {
		return s, false
	}
	return s[n+1:], true
}

// durTime matches the time part of a duration.
//
//	dur-time   = "T" (dur-hour / dur-minute / dur-second)
//	dur-hour   = 1*DIGIT "H" [dur-minute]
//	dur-minute = 1*DIGIT "M" [dur-second]
//	dur-second = 1*DIGIT "S"
func durTime(s string) (string, bool) {
	if !strings.HasPrefix(s, "T") {
		return s, false
	}
	rest := s[1:]
	units := []byte{'H', 'M', 'S'}
	for i, unit := range units {
		next, ok := durUnit(rest, unit)
		if !ok {
			continue
		}
		rest = next
		// the smaller units may follow, in order
		for _, smaller := range units[i+1:] {
			next, ok := durUnit(rest, smaller)
			if !ok {
				break
			}
			rest = next
		}
		return rest, true
	}
	return s, false
}

// ParseDuration parses a DURATION value.
//
//	dur-value = (["+"] / "-") "P" (dur-date / dur-time / dur-week)
//	dur-date  = dur-day [dur-time]
//	dur-week  = 1*DIGIT "W"
//	dur-day   = 1*DIGIT "D"
func ParseDuration(s string) (Duration, string, error) {
	rest := s
	if strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "-") {
		rest = rest[1:]
	}
	if !strings.HasPrefix(rest, "P") {
		return "", s, syntaxError("dur-value", s, rest, `"P"`)
	}
	rest = rest[1:]

	if next, ok := durUnit(rest, 'D'); ok {
		rest = next
		if next, ok := durTime(rest); ok {
			rest = next
		}
	} else if next, ok := durTime(rest); ok {
		rest = next
	} else if next, ok := durUnit(rest, 'W'); ok {
		rest = next
	} else {
		return "", s, syntaxError("dur-value", s, rest, "dur-date, dur-time or dur-week")
	}
	return Duration(s[:len(s)-len(rest)]), rest, nil
}

// ParsePeriod parses a PERIOD value.
//
//	period          = period-explicit / period-start
//	period-explicit = date-time "/" date-time
//	period-start    = date-time "/" dur-value
func ParsePeriod(s string) (Period, string, error) {
	_, rest, err := ParseDateTime(s)
	if err != nil {
		return "", s, err
	}
	if !strings.HasPrefix(rest, "/") {
		return "", s, syntaxError("period", s, rest, `"/"`)
	}
	end := rest[1:]
	if _, next, err := ParseDateTime(end); err == nil {
		return Period(s[:len(s)-len(next)]), next, nil
	}
	_, next, err := ParseDuration(end)
	if err != nil {
		return "", s, syntaxError("period", s, end, "date-time or dur-value")
	}
	return Period(s[:len(s)-len(next)]), next, nil
}

// ParseUTCOffset parses a UTC-OFFSET value.
//
//	utc-offset = time-numzone
//	time-numzone = ("+" / "-") time-hour time-minute [time-second]
func ParseUTCOffset(s string) (UTCOffset, string, error) {
	if !strings.HasPrefix(s, "+") && !strings.HasPrefix(s, "-") {
		return "", s, syntaxError("utc-offset", s, s, `"+" or "-"`)
	}
	rest := s[1:]
	for _, rule := range []string{"time-hour", "time-minute"} {
		_, next, ok := fixed(rest, 2, isDigit)
		if !ok {
			return "", s, syntaxError(rule, s, rest, "2 digits")
		}
		rest = next
	}
	if _, next, ok := fixed(rest, 2, isDigit); ok {
		rest = next
	}
	return UTCOffset(s[:len(s)-len(rest)]), rest, nil
}
