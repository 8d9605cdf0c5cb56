package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// knownUniqueFields maps constraint-name fragments to the field reported in
// duplicate errors. Order matters where fragments overlap.
var knownUniqueFields = []string{
	"owner_purpose",
	"mobile",
	"email",
	"gst",
	"username",
	"token",
	"code",
}

// UniqueViolationField reports whether err is a Postgres unique_violation
// and, if so, which known field the violated constraint covers. Inserts rely
// on this instead of check-then-insert, so concurrent registrations for the
// same key cannot both succeed.
func UniqueViolationField(err error) (string, bool) {
	constraint, ok := uniqueViolationConstraint(err)
	if !ok {
		return "", false
	}

	for _, field := range knownUniqueFields {
		if strings.Contains(constraint, field) {
			return field, true
		}
	}
	return "", true
}

func uniqueViolationConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
		return pqErr.Constraint, true
	}

	return "", false
}
