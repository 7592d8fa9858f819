package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/habitual/internal/habit"
)

// Layouts accepted when reading timestamps. Earlier tracker versions stored
// caller-supplied strings verbatim, so a few near variants of the canonical
// layout turn up in real databases.
var timestampLayouts = []string{
	habit.TimestampLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.DateOnly,
}

// encodeTimestamp converts t to the canonical TEXT form in the store's
// location. Sub-second parts are dropped.
func (s *Store) encodeTimestamp(t time.Time) string {
	return t.In(s.loc).Truncate(time.Second).Format(habit.TimestampLayout)
}

// decodeTimestamp parses a stored timestamp in the store's location.
func (s *Store) decodeTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, raw, s.loc)
		if err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("unmarshal timestamp %q: unrecognised layout", raw)
}
