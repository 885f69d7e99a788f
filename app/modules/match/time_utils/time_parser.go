// Package matchtime parses user-provided "finished at" descriptions for
// backdated match recording.
package matchtime

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// Clock supplies the current time so parsing is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Parser resolves natural-language timestamps like "yesterday 8pm" or
// "aug 12 3:30pm CST" into UTC times in the past.
type Parser interface {
	TimezoneFromInput(input string) (string, bool)
	ParseFinishedAt(input string, timezone string, clock Clock) (time.Time, error)
}

// TimeParser implements Parser with a fixed US timezone abbreviation map.
type TimeParser struct {
	TimezoneMap map[string]string
}

// FallbackTimezone is used when the input carries no recognizable zone.
const FallbackTimezone = "America/Chicago"

// NewTimeParser creates a TimeParser with the supported abbreviations.
func NewTimeParser() *TimeParser {
	return &TimeParser{
		TimezoneMap: map[string]string{
			"PST": "America/Los_Angeles",
			"PDT": "America/Los_Angeles",
			"MST": "America/Denver",
			"MDT": "America/Denver",
			"CST": "America/Chicago",
			"CDT": "America/Chicago",
			"EST": "America/New_York",
			"EDT": "America/New_York",
		},
	}
}

// compactTime matches times written without a colon, like "932am".
var compactTime = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

// TimezoneFromInput extracts a timezone from the input. The second return is
// false when the fallback was used.
func (tp *TimeParser) TimezoneFromInput(input string) (string, bool) {
	inputUpper := strings.ToUpper(strings.TrimSpace(input))

	for _, fullName := range tp.TimezoneMap {
		if inputUpper == strings.ToUpper(fullName) {
			return fullName, true
		}
	}

	for abbrev, fullName := range tp.TimezoneMap {
		if strings.Contains(inputUpper, abbrev) {
			return fullName, true
		}
	}

	return FallbackTimezone, false
}

// ParseFinishedAt parses input relative to clock.Now in the given timezone and
// returns the result in UTC. Matches are recorded after the fact, so the
// parsed time must not be in the future.
func (tp *TimeParser) ParseFinishedAt(input string, timezone string, clock Clock) (time.Time, error) {
	zoneName, _ := tp.TimezoneFromInput(timezone)
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load timezone: %s", zoneName)
	}

	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return time.Time{}, fmt.Errorf("empty time input")
	}
	normalized = compactTime.ReplaceAllString(normalized, "$1:$2 $3")

	w := when.New(nil)
	w.Add(en.All...)

	nowInLoc := clock.Now().In(loc)
	r, err := w.Parse(normalized, nowInLoc)
	if err != nil || r == nil {
		return time.Time{}, fmt.Errorf("could not recognize time format: %s", input)
	}

	parsed := r.Time.In(loc).Truncate(time.Minute)
	if parsed.After(nowInLoc.Truncate(time.Minute)) {
		return time.Time{}, fmt.Errorf("finished time must be in the past (parsed: %s, now: %s)", parsed, nowInLoc.Truncate(time.Minute))
	}

	return parsed.UTC(), nil
}
