package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims and collapses every run of whitespace into one space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeCity keeps the display casing.
func NormalizeCity(city string) string {
	return TrimAndNormalize(city)
}

// CityKey is the case-folded form used for lookups.
func CityKey(city string) string {
	return strings.ToLower(TrimAndNormalize(city))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeID trims identifiers supplied in paths and payloads.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}

// NormalizeTimeOfDay zero-pads "6:30" to "06:30". Anything else is returned trimmed.
func NormalizeTimeOfDay(value string) string {
	value = strings.TrimSpace(value)
	hour, minute, ok := strings.Cut(value, ":")
	if !ok || len(hour) != 1 || hour[0] < '0' || hour[0] > '9' {
		return value
	}
	return "0" + hour + ":" + minute
}
