package http

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "flipfit/pkg/errors"
	"flipfit/pkg/model"
)

// QueryDate reads an optional YYYY-MM-DD query parameter.
func QueryDate(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", nil
	}
	if !model.IsValidDate(value) {
		return "", apperrors.InvalidInput("invalid " + key + " parameter, expected YYYY-MM-DD: " + value)
	}
	return value, nil
}

func QueryBool(r *http.Request, key string) (bool, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, apperrors.InvalidInput("invalid " + key + " parameter: " + value)
	}
	return b, nil
}
