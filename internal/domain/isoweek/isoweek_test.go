package isoweek

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-08-20", "2026-W34"},
		{"2026-01-01", "2026-W01"},
		// 1 Jan 2027 is a Friday; its week belongs to 2026.
		{"2027-01-01", "2026-W53"},
		// 31 Dec 2024 is a Tuesday; its week belongs to 2025.
		{"2024-12-31", "2025-W01"},
	}
	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tt.date, err)
		}
		if got := Key(d); got != tt.want {
			t.Errorf("Key(%s) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestKeyForDate_Malformed(t *testing.T) {
	if _, ok := KeyForDate("20-08-2026"); ok {
		t.Error("malformed date should not produce a key")
	}
	if key, ok := KeyForDate("2026-08-20"); !ok || key != "2026-W34" {
		t.Errorf("got %q, %v", key, ok)
	}
}

func TestRange_MondayToSunday(t *testing.T) {
	// 2026-08-20 is a Thursday.
	d := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	if got := Range(d); got != "2026-08-17 to 2026-08-23" {
		t.Errorf("Range = %q", got)
	}

	// A Sunday belongs to the week that started the previous Monday.
	sun := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	if got := Range(sun); got != "2026-08-17 to 2026-08-23" {
		t.Errorf("Range(sunday) = %q", got)
	}

	// A Monday starts its own week.
	mon := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	if got := Range(mon); got != "2026-08-17 to 2026-08-23" {
		t.Errorf("Range(monday) = %q", got)
	}
}

func TestRangeForDate_Malformed(t *testing.T) {
	if got := RangeForDate("not-a-date"); got != "" {
		t.Errorf("got %q", got)
	}
}
