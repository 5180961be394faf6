package label

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Timestamp is a validated point in time taken from a registry document.
// The input string is kept so documents can be echoed back unchanged.
type Timestamp struct {
	raw string
	t   time.Time
}

// timestampLayouts lists the layouts tried before the free-form parser, most
// specific first. Layouts without a zone are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
}

// isoDate matches a leading YYYY-MM-DD date.
var isoDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)

// ParseTimestamp parses s as a calendar date/time. ISO layouts are tried
// first; anything else goes through dateparse, which rejects ambiguous
// day/month orderings such as "3/4/2024".
//
// Days past the end of the month but not beyond 31 roll over into the next
// month, so "2024-02-30" is March 1st.
func ParseTimestamp(s string) (Timestamp, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: empty", s)
	}

	normalized, extraDays := rollover(trimmed)
	t, err := parseTime(normalized)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return Timestamp{raw: s, t: t.AddDate(0, 0, extraDays)}, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return dateparse.ParseStrict(s)
}

// rollover rewrites an ISO date whose day overflows its month to the first
// of that month and returns the days to add back.
func rollover(s string) (string, int) {
	m := isoDate.FindStringSubmatch(s)
	if m == nil {
		return s, 0
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day > 31 || day <= daysIn(year, time.Month(month)) {
		return s, 0
	}
	return m[1] + "-" + m[2] + "-01" + s[len(m[0]):], day - 1
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsTimestamp reports whether s parses as a Timestamp.
func IsTimestamp(s string) bool {
	_, err := ParseTimestamp(s)
	return err == nil
}

// String returns the timestamp as written in the document.
func (ts Timestamp) String() string {
	return ts.raw
}

// Time returns the parsed time.
func (ts Timestamp) Time() time.Time {
	return ts.t
}
