package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/learnhub/internal/apperror"
	"gorm.io/gorm"
)

// lookupError maps a repository lookup failure: a missing row becomes NotFound, anything else
// is an internal error.
func lookupError(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("%s not found", msg)
	}
	return apperror.Internal(err, "failed to load %s", msg)
}
