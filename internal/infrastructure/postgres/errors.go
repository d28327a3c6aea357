package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRepr     = "22P02"
)

// mapError translates driver errors into repository errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &repository.DuplicateError{Field: uniqueField(pgErr.ConstraintName)}
		case codeInvalidTextRepr, codeForeignKeyViolation:
			// malformed uuid or dangling reference
			return repository.ErrNotFound
		}
	}
	return err
}

// uniqueField extracts the column from a "<table>_<column>_key" constraint name.
func uniqueField(constraint string) string {
	s := strings.TrimSuffix(constraint, "_key")
	if i := strings.Index(s, "_"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// validID reports whether id can be bound to a uuid column. Malformed ids
// cannot match any row, so callers answer ErrNotFound without a round trip.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}
