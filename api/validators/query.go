package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	internalvalidate "github.com/rmoralesdev/salon-backoffice/internal/validate"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
)

// ParseQueryBool reads a boolean flag. Absent means false; anything other
// than true/false/1/0 is rejected rather than silently ignored.
func ParseQueryBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseQueryIntPtr reads an optional integer, nil when absent.
func ParseQueryIntPtr(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// ParseQueryInt64Ptr reads an optional record id, nil when absent.
func ParseQueryInt64Ptr(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// ParseQueryDatePtr reads an optional YYYY-MM-DD date, nil when absent.
func ParseQueryDatePtr(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	ts, err := internalvalidate.Date(key, raw)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// ParseQueryStringPtr reads an optional string, nil when absent or blank.
func ParseQueryStringPtr(r *http.Request, key string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}
