package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateSubmission is returned when the (user_id, quiz_id) unique index rejects an insert.
var ErrDuplicateSubmission = errors.New("a submission already exists for this user and quiz")

const pgUniqueViolation = "23505"

// isDuplicateKey recognises unique violations from every driver we run on. TranslateError covers
// the common case; the other checks catch drivers or wrappers that bypass the translation.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
