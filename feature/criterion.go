package feature

import "fmt"

/*
Criterion represents a constraint on a feature: the value it must take.

Its SatisfiedBy method takes a record and returns a boolean indicating if
the record's value for the feature is the one of the criterion.
*/
type Criterion struct {
	feature *Feature
	value   string
}

/*
Sample is an interface for something that provides values for features.

Its ValueFor method returns the value corresponding to the feature passed
as parameter, or an error if it cannot be obtained.
*/
type Sample interface {
	ValueFor(*Feature) (string, error)
}

type recordSample struct {
	record  []string
	columns Columns
}

// NewCriterion takes a feature and a value and returns the criterion
// constraining the feature to the value.
func NewCriterion(f *Feature, value string) Criterion {
	return Criterion{f, value}
}

// Feature returns the feature to which the constraint applies.
func (c Criterion) Feature() *Feature {
	return c.feature
}

// Value returns the value the feature is constrained to.
func (c Criterion) Value() string {
	return c.value
}

/*
SatisfiedBy receives a record and returns whether its value on the
criterion feature's column equals the value on the criterion. Records too
short to hold the column never satisfy it.
*/
func (c Criterion) SatisfiedBy(record []string) bool {
	return c.feature.column < len(record) && record[c.feature.column] == c.value
}

func (c Criterion) String() string {
	return fmt.Sprintf("%s is %s", c.feature.name, c.value)
}

/*
NewSample takes a record and the columns of its features and returns a
Sample that reads feature values from the record.
*/
func NewSample(record []string, columns Columns) Sample {
	return &recordSample{record: record, columns: columns}
}

func (s *recordSample) ValueFor(f *Feature) (string, error) {
	column, ok := s.columns[f.name]
	if !ok {
		return "", fmt.Errorf("%w: %s has no column", ErrUnknownFeature, f.name)
	}
	if column < 0 || column >= len(s.record) {
		return "", fmt.Errorf("%w: no column %d for feature %s in record of %d values", ErrColumnCount, column, f.name, len(s.record))
	}
	return s.record[column], nil
}

func (s *recordSample) String() string {
	return fmt.Sprintf("%v", s.record)
}
