package model

import (
	"strings"
	"testing"
)

func TestSecondsOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:30", 6*3600 + 30*60, false},
		{"23:59:59", 86399, false},
		{" 07:00 ", 7 * 3600, false},
		{"7am", 0, true},
		{"25:00", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := SecondsOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SecondsOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SecondsOfDay(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlot_Overlaps(t *testing.T) {
	slot := func(start, end string) *Slot {
		return &Slot{StartTime: start, EndTime: end}
	}

	tests := []struct {
		name string
		a, b *Slot
		want bool
	}{
		{"disjoint", slot("06:00", "07:00"), slot("08:00", "09:00"), false},
		{"partial", slot("06:00", "07:30"), slot("07:00", "08:00"), true},
		{"contained", slot("06:00", "09:00"), slot("07:00", "08:00"), true},
		{"touching endpoints", slot("06:00", "07:00"), slot("07:00", "08:00"), true},
		{"identical", slot("06:00", "07:00"), slot("06:00", "07:00"), true},
		{"unparseable", slot("bad", "07:00"), slot("06:00", "07:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() not symmetric: got %v", got)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	id := NewID(PrefixBooking)
	if !strings.HasPrefix(id, PrefixBooking) {
		t.Fatalf("id %q missing prefix", id)
	}
	if len(id) != len(PrefixBooking)+8 {
		t.Errorf("id %q has length %d", id, len(id))
	}
	if strings.ToUpper(id) != id {
		t.Errorf("id %q should be upper case", id)
	}
	if NewID(PrefixBooking) == id {
		t.Errorf("ids should differ")
	}
}

func TestIsValidDate(t *testing.T) {
	if !IsValidDate("2025-03-01") {
		t.Error("expected valid date")
	}
	for _, bad := range []string{"2025-3-1", "01-03-2025", "2025-02-30", ""} {
		if IsValidDate(bad) {
			t.Errorf("IsValidDate(%q) should be false", bad)
		}
	}
}
