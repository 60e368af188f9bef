package fsjson

import (
	"testing"
	"time"
)

func TestFormatDocTime(t *testing.T) {
	if got := formatDocTime(time.Time{}); got != "" {
		t.Fatalf("zero time = %q, want empty", got)
	}

	stamp := time.Date(2025, 8, 10, 18, 30, 45, 0, time.FixedZone("BRT", -3*60*60))
	if got := formatDocTime(stamp); got != "2025-08-10T21:30:45Z" {
		t.Fatalf("formatted = %q, want UTC with literal Z", got)
	}
}

func TestParseDocTime(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"empty", "", time.Time{}},
		{"utc", "2025-08-10T16:00:00Z", time.Date(2025, 8, 10, 16, 0, 0, 0, time.UTC)},
		{"offset", "2025-08-10T13:00:00-03:00", time.Date(2025, 8, 10, 16, 0, 0, 0, time.UTC)},
		{"local with fraction", "2025-08-10T16:00:00.123456", time.Date(2025, 8, 10, 16, 0, 0, 123456000, time.UTC)},
		{"garbage", "amanhã", time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseDocTime(tc.value)
			if tc.want.IsZero() {
				if !got.IsZero() {
					t.Fatalf("parse(%q) = %v, want zero", tc.value, got)
				}
				return
			}
			if !got.Equal(tc.want) {
				t.Fatalf("parse(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}
