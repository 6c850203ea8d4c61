package motive

import "fmt"

// MissingFieldError reports a record that lacks a required field. Index is the
// record's position in the dataset, or -1 for document-level fields.
type MissingFieldError struct {
	Index  int
	Region string
	Field  string
}

func (e *MissingFieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("dataset: missing field %q", e.Field)
	}
	return fmt.Sprintf("%s: missing field %q", recordRef(e.Index, e.Region), e.Field)
}

// InvalidValueError reports a field whose value is not a usable count, or a
// region name that repeats.
type InvalidValueError struct {
	Index  int
	Region string
	Field  string
	Value  any
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: field %q: %s (got %v)", recordRef(e.Index, e.Region), e.Field, e.Reason, e.Value)
}

func recordRef(index int, region string) string {
	if region == "" {
		return fmt.Sprintf("record %d", index)
	}
	return fmt.Sprintf("record %d (%s)", index, region)
}
