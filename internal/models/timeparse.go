package models

import "time"

// Wire timestamps come from a JS backend and are not guaranteed to be
// well-formed RFC 3339. They stay strings on the models; ParseTime is the
// single lenient parser used everywhere a comparison is needed.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func ParseTime(value string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
