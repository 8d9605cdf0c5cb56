package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestUniqueViolationFieldPgconn(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_dealers_gst"}

	field, ok := UniqueViolationField(err)
	if !ok {
		t.Fatal("unique violation not detected")
	}
	if field != "gst" {
		t.Errorf("field = %q, want gst", field)
	}
}

func TestUniqueViolationFieldPq(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "idx_dealers_mobile"}

	field, ok := UniqueViolationField(err)
	if !ok {
		t.Fatal("unique violation not detected")
	}
	if field != "mobile" {
		t.Errorf("field = %q, want mobile", field)
	}
}

func TestUniqueViolationFieldWrapped(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505", ConstraintName: "idx_otps_owner_purpose"}
	err := fmt.Errorf("create failed: %w", inner)

	field, ok := UniqueViolationField(err)
	if !ok {
		t.Fatal("wrapped unique violation not detected")
	}
	if field != "owner_purpose" {
		t.Errorf("field = %q, want owner_purpose", field)
	}
}

func TestUniqueViolationFieldUnknownConstraint(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "some_other_idx"}

	field, ok := UniqueViolationField(err)
	if !ok {
		t.Fatal("unique violation not detected")
	}
	if field != "" {
		t.Errorf("field = %q, want empty for unknown constraint", field)
	}
}

func TestUniqueViolationFieldOtherErrors(t *testing.T) {
	if _, ok := UniqueViolationField(errors.New("connection refused")); ok {
		t.Error("plain error treated as unique violation")
	}
	if _, ok := UniqueViolationField(&pgconn.PgError{Code: "23503"}); ok {
		t.Error("foreign-key violation treated as unique violation")
	}
	if _, ok := UniqueViolationField(nil); ok {
		t.Error("nil treated as unique violation")
	}
}
