// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package timestamp parses the free-form creation dates found in note headings.
// Ambiguous numeric dates are read day first ("03/04/2020" is 3 April 2020).
package timestamp

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrParse is returned when a string does not resemble any known date format.
var ErrParse = errors.New("unrecognized date")

// layouts are the named-month heading formats written by the note
// exporter, tried in order before falling back to free-form parsing.
var layouts = []string{
	"Jan 2, 2006, 3:04:05 PM",
	"Jan 2, 2006, 3:04:05\u202fPM",
	"2 Jan 2006, 15:04:05",
	"2 Jan 2006, 15:04",
	"Jan 2, 2006, 3:04 PM",
}

// numericDate matches a day-first numeric date separated by '.', '/' or
// '-', optionally followed by ", " or whitespace and a time of day.
var numericDate = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})(?:,?\s+(.+))?$`)

// numericLayouts are tried against the normalised "d/m/yyyy[ time]" form.
var numericLayouts = []string{
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006 3:04 PM",
	"2/1/2006 3:04:05 PM",
}

// normalizeNumeric rewrites "12.01.2020, 10:00" and its variants to
// "12/01/2020 10:00". ok is false when s is not a numeric date.
func normalizeNumeric(s string) (string, bool) {
	m := numericDate.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	out := m[1] + "/" + m[2] + "/" + m[3]
	if clock := strings.TrimSpace(strings.ReplaceAll(m[4], "\u202f", " ")); clock != "" {
		out += " " + strings.ToUpper(strings.Join(strings.Fields(clock), " "))
	}
	return out, true
}

// Parse converts s into a point in time, interpreted in loc. A nil loc
// means time.Local, which is how the exporter renders headings.
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrParse)
	}
	if loc == nil {
		loc = time.Local
	}

	if norm, ok := normalizeNumeric(s); ok {
		for _, layout := range numericLayouts {
			if t, err := time.ParseInLocation(layout, norm, loc); err == nil {
				return t, nil
			}
		}
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(s, loc, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrParse, s, err)
	}
	return t, nil
}
