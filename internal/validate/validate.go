// Package validate holds the field-level validation helpers shared by the
// domain services. All helpers are pure and return pkg/errors values with
// CodeValidation so controllers map them to 400 without inspection.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
)

// Accepted layouts for appointment datetimes. A bare date is valid and
// resolves to midnight local time, matching ISO-8601 parsing on the
// desktop client.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

const dateLayout = "2006-01-02"

// RequiredString trims value and fails when nothing remains.
func RequiredString(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperrors.New(apperrors.CodeValidation, fmt.Sprintf("%s is required", field))
	}
	return trimmed, nil
}

// OptionalString trims the value and collapses whitespace-only input to nil
// so blank form fields are stored as NULL rather than empty strings.
func OptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Email applies the deliberately loose check the booking desk relies on:
// anything with an "@" is accepted, anything else rejected. Full RFC 5322
// validation rejects real addresses the salon has on file.
func Email(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if !strings.Contains(trimmed, "@") {
		return "", apperrors.New(apperrors.CodeValidation, "email must contain @")
	}
	return trimmed, nil
}

// DateTime parses an ISO-style timestamp, accepting a bare date as midnight.
func DateTime(field, value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("%s is required", field))
	}
	for _, layout := range datetimeLayouts {
		if ts, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, apperrors.New(
		apperrors.CodeValidation,
		fmt.Sprintf("%s must be an ISO datetime (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS)", field),
	)
}

// Date parses a bare ISO date.
func Date(field, value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("%s is required", field))
	}
	ts, err := time.ParseInLocation(dateLayout, trimmed, time.Local)
	if err != nil {
		return time.Time{}, apperrors.New(
			apperrors.CodeValidation,
			fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field),
		)
	}
	return ts, nil
}

// NonNegativePrice rejects negative money amounts.
func NonNegativePrice(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("%s must not be negative", field))
	}
	return nil
}

// NonNegativeInt rejects negative counts.
func NonNegativeInt(field string, value int) error {
	if value < 0 {
		return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("%s must not be negative", field))
	}
	return nil
}
