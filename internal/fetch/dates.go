// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"regexp"
	"time"
)

// dateLayouts are tried in order against the (truncated) date string.
// The first successful parse wins.
var dateLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006",
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// ParseDate parses a source date string against the known layout list.
// The input is truncated to each layout's length before parsing, so
// trailing fragments (time zones, sub-second precision) do not defeat
// the shorter layouts. Returns the zero time when nothing matches.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		candidate := s
		if len(candidate) > len(layout) {
			candidate = candidate[:len(layout)]
		}
		if t, err := time.Parse(layout, candidate); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ExtractYear pulls a plausible publication year out of an arbitrary
// date string. It is deliberately more lenient than ParseDate: any
// 4-digit run is accepted as long as it falls within [1900, 2030], so a
// year survives even when the full date is unparseable.
func ExtractYear(s string) int {
	m := yearPattern.FindString(s)
	if m == "" {
		return 0
	}
	year := int(m[0]-'0')*1000 + int(m[1]-'0')*100 + int(m[2]-'0')*10 + int(m[3]-'0')
	if year < 1900 || year > 2030 {
		return 0
	}
	return year
}
