/*
Package dataset provides the in-memory representation of labeled examples
induction works on: a table mapping each distinct record to its label.
*/
package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pbanos/id3/feature"
)

// Example is one labeled record: an ordered sequence of feature values
// and the label observed for them.
type Example struct {
	Record []string
	Label  string
}

// Error represents an error related with example tables.
type Error string

const (
	// ErrConflictingLabel is returned when a record is added to a table
	// that already holds it with a different label.
	ErrConflictingLabel = Error("record already present with a different label")
	// ErrEmpty is returned by operations that are undefined on a table
	// without examples.
	ErrEmpty = Error("empty example table")
)

func (e Error) Error() string {
	return string(e)
}

/*
Table is a set of examples, represented as a mapping from each distinct
record to its label. The mapping is always a function: a
record cannot be held with two different labels. Examples keep the order
in which they were first added, and every iteration over a table follows
it.

Tables obtained by subsetting share records with the table they come
from. Records must not be modified once added.
*/
type Table struct {
	keys    []string
	labels  map[string]string
	records map[string][]string
}

/*
Key returns the comma-separated form of a record that external loaders use
as the key of their example maps. Values holding commas make it ambiguous,
so tables identify records with their own encoding.
*/
func Key(record []string) string {
	return strings.Join(record, ",")
}

// ParseKey takes a serialized record and returns its values.
func ParseKey(key string) []string {
	values := strings.Split(key, ",")
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

// recordKey encodes a record prefixing every value with its length, so
// distinct records always get distinct keys whatever their values hold.
func recordKey(record []string) string {
	var b strings.Builder
	for _, v := range record {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}

// New returns an empty table.
func New() *Table {
	return &Table{
		labels:  make(map[string]string),
		records: make(map[string][]string),
	}
}

// FromExamples returns a table with the given examples added in order, or
// the first error returned by Add.
func FromExamples(examples ...Example) (*Table, error) {
	t := New()
	for i, e := range examples {
		if err := t.Add(e.Record, e.Label); err != nil {
			return nil, fmt.Errorf("adding example %d: %w", i, err)
		}
	}
	return t, nil
}

/*
FromMap takes a mapping of serialized records to labels, as produced by
external loaders, and returns a table with its examples. Since map
iteration order is undefined, examples are added in ascending key order.
Keys that only differ on spacing around values identify the same record,
so an error wrapping ErrConflictingLabel is returned if they carry
different labels.
*/
func FromMap(m map[string]string) (*Table, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	t := New()
	for _, k := range keys {
		if err := t.Add(ParseKey(k), m[k]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

/*
Add takes a record and its label and adds them to the table. Adding a
record already present with the same label does nothing; adding it with
a different label returns an error wrapping ErrConflictingLabel.
*/
func (t *Table) Add(record []string, label string) error {
	k := recordKey(record)
	if l, ok := t.labels[k]; ok {
		if l != label {
			return fmt.Errorf("%w: %q is labeled %q, got %q", ErrConflictingLabel, Key(record), l, label)
		}
		return nil
	}
	r := make([]string, len(record))
	copy(r, record)
	t.keys = append(t.keys, k)
	t.labels[k] = label
	t.records[k] = r
	return nil
}

// Len returns the number of examples in the table.
func (t *Table) Len() int {
	return len(t.keys)
}

// Examples returns the examples of the table in order.
func (t *Table) Examples() []Example {
	result := make([]Example, 0, len(t.keys))
	for _, k := range t.keys {
		result = append(result, Example{Record: t.records[k], Label: t.labels[k]})
	}
	return result
}

// Label returns the label of the given record and whether the table
// holds it.
func (t *Table) Label(record []string) (string, bool) {
	l, ok := t.labels[recordKey(record)]
	return l, ok
}

// LabelCounts returns the number of examples per label, with labels in
// the order they are first found on the table.
func (t *Table) LabelCounts() Counts {
	var counts Counts
	positions := make(map[string]int)
	for _, k := range t.keys {
		l := t.labels[k]
		i, ok := positions[l]
		if !ok {
			i = len(counts)
			positions[l] = i
			counts = append(counts, Count{Label: l})
		}
		counts[i].N++
	}
	return counts
}

/*
MajorityLabel returns the most frequent label on the table. Ties are
resolved in favour of the label found first. An error wrapping ErrEmpty
is returned for empty tables.
*/
func (t *Table) MajorityLabel() (string, error) {
	if len(t.keys) == 0 {
		return "", ErrEmpty
	}
	l, _ := t.LabelCounts().Majority()
	return l, nil
}

// UnifiedLabel returns the label shared by every example of the table and
// true, or false if the table is empty or has more than one label.
func (t *Table) UnifiedLabel() (string, bool) {
	if len(t.keys) == 0 {
		return "", false
	}
	label := t.labels[t.keys[0]]
	for _, k := range t.keys[1:] {
		if t.labels[k] != label {
			return "", false
		}
	}
	return label, true
}

// SubsetWith returns a table with the examples whose record satisfies the
// given criterion.
func (t *Table) SubsetWith(c feature.Criterion) *Table {
	result := New()
	for _, k := range t.keys {
		if c.SatisfiedBy(t.records[k]) {
			result.keys = append(result.keys, k)
			result.labels[k] = t.labels[k]
			result.records[k] = t.records[k]
		}
	}
	return result
}

/*
Partition takes a feature and returns one subset of the table per
available value of the feature, in the feature's value order. Examples
with a value outside the feature's domain belong to no subset.
*/
func (t *Table) Partition(f *feature.Feature) []*Table {
	values := f.AvailableValues()
	result := make([]*Table, len(values))
	positions := make(map[string]int, len(values))
	for i, v := range values {
		result[i] = New()
		positions[v] = i
	}
	for _, k := range t.keys {
		r := t.records[k]
		if f.Column() >= len(r) {
			continue
		}
		i, ok := positions[r[f.Column()]]
		if !ok {
			continue
		}
		result[i].keys = append(result[i].keys, k)
		result[i].labels[k] = t.labels[k]
		result[i].records[k] = r
	}
	return result
}

// Validate returns the first error the domain reports for a record of the
// table, or nil if all of them are valid.
func (t *Table) Validate(d *feature.Domain) error {
	for _, k := range t.keys {
		if err := d.Validate(t.records[k]); err != nil {
			return fmt.Errorf("record %q: %w", Key(t.records[k]), err)
		}
	}
	return nil
}
