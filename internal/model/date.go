package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"retro-taskmaster/internal/dates"
)

// Date is a calendar date kept in ISO YYYY-MM-DD form. Drivers may hand DATE
// columns back as time.Time (postgres, sqlite declared types) or as text;
// both are normalized to the ISO string.
type Date string

// Display returns the date in DD.MM.YYYY form.
func (d Date) Display() string {
	return dates.ToDisplay(string(d))
}

func (d Date) String() string {
	return string(d)
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(dates.StorageLayout))
	case string:
		*d = Date(v)
	case []byte:
		*d = Date(string(v))
	default:
		return fmt.Errorf("scan date: unsupported type %T", value)
	}
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}
