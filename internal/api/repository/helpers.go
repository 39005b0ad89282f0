package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDuplicateKey reports whether err is a unique-constraint violation. The
// gorm error translation covers the postgres driver; the string checks cover
// drivers (sqlite in tests) that surface the raw constraint message.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed") ||
		strings.Contains(msg, "duplicate key")
}
