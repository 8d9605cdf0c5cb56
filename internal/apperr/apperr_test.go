package apperr

import (
	"errors"
	"testing"
)

func TestValidationWrapsSentinel(t *testing.T) {
	err := Validation("mobile must be a 10-digit number")
	if !errors.Is(err, ErrValidation) {
		t.Error("Validation result does not match ErrValidation")
	}
	if err.Error() != "validation failed: mobile must be a 10-digit number" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestDuplicateField(t *testing.T) {
	err := Duplicate("gst")
	if !errors.Is(err, ErrDuplicate) {
		t.Error("Duplicate result does not match ErrDuplicate")
	}

	field, ok := DuplicateField(err)
	if !ok || field != "gst" {
		t.Errorf("DuplicateField = %q, %v; want gst, true", field, ok)
	}

	if _, ok := DuplicateField(ErrNotFound); ok {
		t.Error("DuplicateField matched a non-duplicate error")
	}
}
