package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

// ID prefixes.
const (
	PrefixBooking      = "BKG"
	PrefixWaitlist     = "WL"
	PrefixNotification = "NOT"
	PrefixSlot         = "SLT"
	PrefixGym          = "GYM"
)

// NewID returns prefix followed by eight upper-case hex characters.
func NewID(prefix string) string {
	return prefix + strings.ToUpper(uuid.NewString()[:8])
}

// SecondsOfDay parses "HH:MM" or "HH:MM:SS".
func SecondsOfDay(value string) (int, error) {
	value = strings.TrimSpace(value)
	layouts := []string{TimeOfDayLayout, "15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", value)
}

func IsValidDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}
