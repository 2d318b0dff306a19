/*
Package feature describes the categorical attributes records are made of:
their names, the finite set of values each of them may take and the column
of a record they are read from.
*/
package feature

import (
	"fmt"
	"strings"
)

/*
Feature represents a property that can be observed on a record and that can
only take a value among a finite set.
*/
type Feature struct {
	name            string
	availableValues []string
	column          int
	index           int
}

// Error represents an error related with features and the values records
// carry for them.
type Error string

const (
	// ErrUnknownValue is returned when a record carries a value for a
	// feature that is not among its available values.
	ErrUnknownValue = Error("value outside of feature domain")
	// ErrColumnCount is returned when a record does not have exactly one
	// value per feature of the domain.
	ErrColumnCount = Error("record has wrong number of columns")
	// ErrUnknownFeature is returned when a feature name is not part of a
	// domain.
	ErrUnknownFeature = Error("unknown feature")
)

func (e Error) Error() string {
	return string(e)
}

/*
New takes a name string, a slice of available value strings and the
zero-based column from which records provide its value, and returns a
feature with them.
*/
func New(name string, availableValues []string, column int) *Feature {
	values := make([]string, len(availableValues))
	copy(values, availableValues)
	return &Feature{name: name, availableValues: values, column: column, index: -1}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return f.name
}

// Column returns the zero-based position of the feature's value in a record.
func (f *Feature) Column() int {
	return f.column
}

/*
AvailableValues returns a string slice with the values available for the
feature in their declared order. The slice must not be modified.
*/
func (f *Feature) AvailableValues() []string {
	return f.availableValues
}

/*
Valid receives a value and returns nil when it is included in the available
values of the feature. Otherwise it returns an error wrapping ErrUnknownValue.
*/
func (f *Feature) Valid(value string) error {
	if f.Has(value) {
		return nil
	}
	return fmt.Errorf("%w: feature %s got %q", ErrUnknownValue, f.name, value)
}

// Has reports whether value is one of the feature's available values.
func (f *Feature) Has(value string) bool {
	for _, av := range f.availableValues {
		if av == value {
			return true
		}
	}
	return false
}

func (f *Feature) String() string {
	return f.name
}

/*
ParseValues takes a comma-separated list of values as found on attribute
description files and returns the values it contains, trimmed of spaces
and of a trailing period.
*/
func ParseValues(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	var values []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}
