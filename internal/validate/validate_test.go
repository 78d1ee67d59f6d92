package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	appErr := apperrors.As(err)
	if appErr == nil {
		t.Fatalf("expected *apperrors.Error, got %T", err)
	}
	if appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected CodeValidation, got %s", appErr.Code())
	}
}

func TestRequiredString(t *testing.T) {
	got, err := RequiredString("name", "  Ana Torres ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Ana Torres" {
		t.Fatalf("expected trimmed value, got %q", got)
	}

	_, err = RequiredString("name", "   ")
	assertValidationError(t, err)
}

func TestOptionalString(t *testing.T) {
	if OptionalString(nil) != nil {
		t.Fatal("nil in should be nil out")
	}

	blank := "   "
	if OptionalString(&blank) != nil {
		t.Fatal("whitespace-only value should collapse to nil")
	}

	v := "  keratin  "
	got := OptionalString(&v)
	if got == nil || *got != "keratin" {
		t.Fatalf("expected trimmed pointer, got %v", got)
	}
}

func TestEmail(t *testing.T) {
	got, err := Email(" ana@example.com ")
	if err != nil || got != "ana@example.com" {
		t.Fatalf("expected trimmed email, got %q err %v", got, err)
	}

	got, err = Email("")
	if err != nil || got != "" {
		t.Fatalf("empty email should pass through, got %q err %v", got, err)
	}

	_, err = Email("not-an-email")
	assertValidationError(t, err)
}

func TestDateTimeAcceptsCommonShapes(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-03-14T15:30:00", time.Date(2026, 3, 14, 15, 30, 0, 0, time.Local)},
		{"2026-03-14 15:30", time.Date(2026, 3, 14, 15, 30, 0, 0, time.Local)},
		{"2026-03-14", time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		got, err := DateTime("appointment_datetime", tc.in)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestDateTimeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "next tuesday", "14/03/2026", "2026-13-01"} {
		_, err := DateTime("appointment_datetime", in)
		assertValidationError(t, err)
	}
}

func TestDate(t *testing.T) {
	got, err := Date("expiry_date", "2026-12-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	_, err = Date("expiry_date", "2026-12-31T10:00:00")
	assertValidationError(t, err)
}

func TestNonNegativePrice(t *testing.T) {
	if err := NonNegativePrice("price", decimal.NewFromInt(0)); err != nil {
		t.Fatalf("zero should be allowed: %v", err)
	}
	assertValidationError(t, NonNegativePrice("price", decimal.NewFromInt(-1)))
}

func TestNonNegativeInt(t *testing.T) {
	if err := NonNegativeInt("quantity_on_hand", 0); err != nil {
		t.Fatalf("zero should be allowed: %v", err)
	}
	assertValidationError(t, NonNegativeInt("quantity_on_hand", -3))
}
