package dbutil

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// BindTx returns a gorm handle whose statements run on tx. The returned handle
// must not outlive tx.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	// Session with a Context clones the Statement, so the ConnPool swap does
	// not leak into the shared root handle.
	bound := db.Session(&gorm.Session{Context: context.Background()})
	bound.Statement.ConnPool = tx
	return bound
}

// IsUniqueViolation reports whether err is a unique-constraint failure. When
// constraint is non-empty the constraint name must match too (postgres only;
// sqlite and translated gorm errors match on any constraint).
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		return constraint == "" || strings.Contains(msg, strings.ToLower(constraint))
	}
	return strings.Contains(msg, "unique constraint failed")
}

// ParseID parses a positive numeric identifier such as a path :id.
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
