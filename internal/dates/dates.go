// Package dates converts deadlines between the localized DD.MM.YYYY form
// used for input and display and the ISO YYYY-MM-DD storage form.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// StorageLayout is the ISO form deadlines are stored and sorted in.
	StorageLayout = "2006-01-02"
	// DisplayLayout is the localized form deadlines are entered and shown in.
	DisplayLayout = "02.01.2006"
)

// ErrMalformed reports a deadline that is not a real calendar date.
var ErrMalformed = errors.New("malformed date")

// ToDisplay reorders an ISO date into DD.MM.YYYY. Input that does not split
// into three dash-separated parts is returned unchanged.
func ToDisplay(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}

// ToStorage reorders a DD.MM.YYYY date into YYYY-MM-DD, zero-padding day and
// month. Input that does not split into three dot-separated parts is
// returned unchanged.
func ToStorage(display string) string {
	parts := strings.Split(display, ".")
	if len(parts) != 3 {
		return display
	}
	return parts[2] + "-" + zeroPad(parts[1]) + "-" + zeroPad(parts[0])
}

// ParseDisplay converts a localized date into storage form and rejects
// anything that is not a valid calendar date.
func ParseDisplay(display string) (string, error) {
	trimmed := strings.TrimSpace(display)
	if strings.Count(trimmed, ".") != 2 {
		return "", fmt.Errorf("%q: %w", display, ErrMalformed)
	}
	iso := ToStorage(trimmed)
	if err := ValidateStorage(iso); err != nil {
		return "", fmt.Errorf("%q: %w", display, err)
	}
	return iso, nil
}

// ValidateStorage checks that iso is a real date in YYYY-MM-DD form.
func ValidateStorage(iso string) error {
	if _, err := time.Parse(StorageLayout, iso); err != nil {
		return ErrMalformed
	}
	return nil
}

// Today returns the current date in display form.
func Today(now time.Time) string {
	return now.Format(DisplayLayout)
}

// zeroPad left-pads s with zeros to two characters.
func zeroPad(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}
