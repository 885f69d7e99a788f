package matchtime

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f fakeClock) Now() time.Time { return f.now }

func TestTimezoneFromInput(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantFound bool
	}{
		{
			name:      "abbreviation PST",
			input:     "finished 5 PM PST",
			want:      "America/Los_Angeles",
			wantFound: true,
		},
		{
			name:      "mixed case abbreviation",
			input:     "cst",
			want:      "America/Chicago",
			wantFound: true,
		},
		{
			name:      "full zone name",
			input:     "America/New_York",
			want:      "America/New_York",
			wantFound: true,
		},
		{
			name:      "unknown falls back",
			input:     "XYZ",
			want:      FallbackTimezone,
			wantFound: false,
		},
		{
			name:      "empty falls back",
			input:     "",
			want:      FallbackTimezone,
			wantFound: false,
		},
	}

	tp := NewTimeParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := tp.TimezoneFromInput(tt.input)
			if got != tt.want {
				t.Errorf("TimezoneFromInput() = %q, want %q", got, tt.want)
			}
			if found != tt.wantFound {
				t.Errorf("TimezoneFromInput() found = %v, want %v", found, tt.wantFound)
			}
		})
	}
}

func TestParseFinishedAt(t *testing.T) {
	// 2027-06-05 12:00 UTC is 7:00 AM CDT, 8:00 AM EDT.
	now := time.Date(2027, 6, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		timezone string
		want     time.Time
		wantErr  bool
	}{
		{
			name:     "yesterday evening in CDT",
			input:    "yesterday 8pm",
			timezone: "CDT",
			want:     time.Date(2027, 6, 5, 1, 0, 0, 0, time.UTC),
		},
		{
			name:     "compact time earlier today",
			input:    "630am",
			timezone: "CDT",
			want:     time.Date(2027, 6, 5, 11, 30, 0, 0, time.UTC),
		},
		{
			name:     "full zone name",
			input:    "yesterday 8pm",
			timezone: "America/New_York",
			want:     time.Date(2027, 6, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "unknown timezone uses fallback",
			input:    "yesterday 3pm",
			timezone: "XYZ",
			want:     time.Date(2027, 6, 4, 20, 0, 0, 0, time.UTC),
		},
		{
			name:     "future time rejected",
			input:    "tomorrow 5 pm",
			timezone: "CDT",
			wantErr:  true,
		},
		{
			name:     "later today rejected",
			input:    "9:32am",
			timezone: "CDT",
			wantErr:  true,
		},
		{
			name:     "unrecognized input",
			input:    "invalid date",
			timezone: "CDT",
			wantErr:  true,
		},
		{
			name:     "empty input",
			input:    "   ",
			timezone: "CDT",
			wantErr:  true,
		},
	}

	tp := NewTimeParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tp.ParseFinishedAt(tt.input, tt.timezone, fakeClock{now: now})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFinishedAt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseFinishedAt() = %s, want %s", got.Format(time.RFC3339), tt.want.Format(time.RFC3339))
			}
		})
	}
}
