package weavetest

import (
	"testing"

	"github.com/iov-one/quorum/errors"
)

// IsErr fails the test unless got is of the want kind. A nil want expects
// no error.
func IsErr(t testing.TB, want *errors.Error, got error) {
	t.Helper()

	if want == nil {
		if got != nil {
			t.Fatalf("want no error, got %+v", got)
		}
		return
	}
	if !want.Is(got) {
		t.Fatalf("want %q, got %+v", want, got)
	}
}

// FieldError fails the test unless err carries an error of the want kind
// for given field. A nil want expects no error for that field.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("want no %q field error, got %q", fieldName, errs)
		}
		return
	}
	for _, e := range errs {
		if want.Is(e) {
			return
		}
	}
	t.Fatalf("want %q error for field %q, got %q", want, fieldName, errs)
}
