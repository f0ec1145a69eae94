package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"gorm.io/gorm"

	"retro-taskmaster/internal/dates"
)

var (
	// ErrConnectivity means the store could not be reached. Callers show
	// the failure and keep their previous state.
	ErrConnectivity = errors.New("store unreachable")
	// ErrDuplicateKey is returned when a unique name is already taken.
	ErrDuplicateKey = errors.New("name already exists")
	// ErrSentinelCategory rejects deleting or renaming the fallback category.
	ErrSentinelCategory = errors.New("the fallback category cannot be deleted or renamed")
	// ErrCategoryNotFound is returned when a category name does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrMasterNotFound is returned when a master category id does not exist.
	ErrMasterNotFound = errors.New("master category not found")
	// ErrTaskNotFound is returned when an update targets a missing task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrMalformedDate rejects a deadline that is not a real calendar date.
	ErrMalformedDate = dates.ErrMalformed
)

var domainErrors = []error{
	ErrDuplicateKey,
	ErrSentinelCategory,
	ErrCategoryNotFound,
	ErrMasterNotFound,
	ErrTaskNotFound,
	ErrMalformedDate,
}

// storeErr annotates err with the operation and classifies driver failures.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, domain := range domainErrors {
		if errors.Is(err, domain) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicateKey)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, err)
	case isConnectivity(err):
		return fmt.Errorf("%s: %w: %w", op, ErrConnectivity, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func isConnectivity(err error) bool {
	if errors.Is(err, ErrConnectivity) || errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
