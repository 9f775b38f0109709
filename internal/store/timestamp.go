package store

import "time"

// lastCheckLayouts are tried in order. The second covers naive ISO-8601
// stamps (optional fractional seconds, no offset) written by older tools.
var lastCheckLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// parseLastCheck reads a last_check value. Stamps without an offset are
// taken as local time. ok is false when no layout matches.
func parseLastCheck(s string) (t time.Time, ok bool) {
	for _, layout := range lastCheckLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
