package onboarding

import (
	"errors"
	"fmt"
)

// ErrorKind classifies data problems found in a remote snapshot.
type ErrorKind string

const (
	// KindInvalidTimestamp marks a date field that could not be parsed.
	// It is always propagated to the caller.
	KindInvalidTimestamp ErrorKind = "InvalidTimestamp"

	// KindDegenerateKey marks an assignment with an empty title or
	// description. Grouping still succeeds; callers log it as a warning.
	KindDegenerateKey ErrorKind = "DegenerateKey"
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrDegenerateKey    = errors.New("degenerate grouping key")
)

// DataError describes a problem with a single field of a single record.
type DataError struct {
	Kind     ErrorKind
	Field    string
	RecordID string
	Value    string
	Err      error
}

func (e *DataError) Error() string {
	msg := fmt.Sprintf("%s: field %q", e.Kind, e.Field)
	if e.RecordID != "" {
		msg += fmt.Sprintf(" of record %q", e.RecordID)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" has value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a DataError against the kind sentinels.
func (e *DataError) Is(target error) bool {
	switch target {
	case ErrInvalidTimestamp:
		return e.Kind == KindInvalidTimestamp
	case ErrDegenerateKey:
		return e.Kind == KindDegenerateKey
	}
	return false
}
