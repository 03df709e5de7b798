package httputil

import (
	"net/http"
	"strconv"

	"hackportal/pkg/apperr"
)

// ParseLimit reads an optional ?limit= query parameter. Zero means "no cap".
func ParseLimit(r *http.Request) (int64, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, apperr.InvalidInput("invalid limit parameter: " + s)
	}
	return v, nil
}

// ParseBoolFlag reads an optional boolean query parameter. Absent means false.
func ParseBoolFlag(r *http.Request, name string) (bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, apperr.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return v, nil
}
