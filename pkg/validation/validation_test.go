package validation

import (
	"testing"
)

type sample struct {
	Start string `validate:"required,time_of_day"`
	Date  string `validate:"required,booking_date"`
	Seats int    `validate:"min=1"`
}

func TestStruct(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		name       string
		input      sample
		wantFields []string
	}{
		{"valid", sample{Start: "06:30", Date: "2025-03-01", Seats: 1}, nil},
		{"seconds accepted", sample{Start: "06:30:00", Date: "2025-03-01", Seats: 1}, nil},
		{"bad time", sample{Start: "25:00", Date: "2025-03-01", Seats: 1}, []string{"Start"}},
		{"bad date", sample{Start: "06:30", Date: "01-03-2025", Seats: 1}, []string{"Date"}},
		{"everything wrong", sample{Seats: 0}, []string{"Start", "Date", "Seats"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(v, tt.input)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T (%v)", err, err)
			}
			details := verrs.Details()
			for _, field := range tt.wantFields {
				if _, ok := details[field]; !ok {
					t.Errorf("missing detail for %s in %v", field, details)
				}
			}
		})
	}
}

func TestTranslateMessages(t *testing.T) {
	v, _ := New()
	err := Struct(v, sample{Start: "nope", Date: "2025-03-01", Seats: 1})

	details := DetailsOf(err)
	if details["Start"] != "Start must be a time of day in HH:MM format" {
		t.Errorf("unexpected message: %v", details["Start"])
	}
}
