package models

import (
	"database/sql/driver"
	"fmt"
)

// ApplicationStatus is the publication state of an application.
// The only legal transition is Pending -> Active.
type ApplicationStatus string

const (
	StatusPending ApplicationStatus = "Pending"
	StatusActive  ApplicationStatus = "Active"
)

func (s ApplicationStatus) Valid() bool {
	return s == StatusPending || s == StatusActive
}

// CanTransitionTo reports whether s may move to next.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	return s == StatusPending && next == StatusActive
}

func (s ApplicationStatus) String() string {
	return string(s)
}

// Scan rejects values outside the closed set so a corrupted row never
// surfaces as a status the rest of the code does not handle.
func (s *ApplicationStatus) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("application status: null value")
	default:
		return fmt.Errorf("application status: unsupported type %T", value)
	}

	status := ApplicationStatus(raw)
	if !status.Valid() {
		return fmt.Errorf("application status: unknown value %q", raw)
	}
	*s = status
	return nil
}

func (s ApplicationStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("application status: unknown value %q", string(s))
	}
	return string(s), nil
}
