package db

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var sqliteUniqueRe = regexp.MustCompile(`UNIQUE constraint failed: (\w+)\.`)

// uniqueByTable maps the table that raised a unique violation to the
// domain conflict it represents.
var uniqueByTable = map[string]*apperr.Error{
	"users":       apperr.ErrDuplicateEmail,
	"roles":       apperr.ErrDuplicateRoleName,
	"tags":        apperr.ErrDuplicateTag,
	"departments": apperr.ErrDuplicateDepartment,
}

// TranslateError converts driver-specific constraint errors into the
// apperr taxonomy. Errors it does not recognise are returned unchanged.
// This is the only place that inspects driver error codes or messages.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", conflictFor(pgErr.TableName), pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", apperr.ErrInvalidReference, pgErr.ConstraintName)
		}
		return err
	}

	msg := err.Error()
	if m := sqliteUniqueRe.FindStringSubmatch(msg); m != nil {
		return fmt.Errorf("%w: %s", conflictFor(m[1]), msg)
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %s", apperr.ErrInvalidReference, msg)
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", apperr.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", apperr.ErrInvalidReference, err)
	}
	return err
}

func conflictFor(table string) *apperr.Error {
	if e, ok := uniqueByTable[table]; ok {
		return e
	}
	return apperr.ErrConflict
}
