package onboarding

import (
	"strings"
	"time"
)

// Layouts the remote API has been seen to emit. Zoned layouts come first;
// the zone-less layouts are read in the local time zone, the date-only one
// as UTC midnight.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

const (
	localLayout    = "2006-01-02T15:04:05"
	dateOnlyLayout = "2006-01-02"
)

// ParseTimestamp parses raw as a timestamp belonging to field of the record
// identified by recordID. Anything unparseable, including an empty string,
// yields a *DataError of kind InvalidTimestamp.
func ParseTimestamp(field, recordID, raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, &DataError{Kind: KindInvalidTimestamp, Field: field, RecordID: recordID, Err: ErrInvalidTimestamp}
	}

	var lastErr error
	for _, layout := range zonedLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	if t, err := time.ParseInLocation(localLayout, value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, nil
	}

	return time.Time{}, &DataError{
		Kind:     KindInvalidTimestamp,
		Field:    field,
		RecordID: recordID,
		Value:    value,
		Err:      lastErr,
	}
}

// ParseOptionalTimestamp is ParseTimestamp for fields the API may omit:
// a blank value yields the zero time and no error.
func ParseOptionalTimestamp(field, recordID, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return ParseTimestamp(field, recordID, raw)
}
