package feature

import (
	"fmt"
	"sort"
)

/*
Domain is the attribute domain descriptor: the features records are made
of, ordered by the column they occupy on a record. That order is the one
every deterministic iteration over features follows.
*/
type Domain struct {
	features []*Feature
	byName   map[string]*Feature
	width    int
}

// Columns maps feature names to the zero-based column of their value on a
// record.
type Columns map[string]int

/*
NewDomain takes a map of feature names to comma-separated lists of their
available values and a map of feature names to their zero-based column,
and returns the domain they describe or an error if both maps do not
describe the same features, or if the features are not valid for a
domain (see Of). Columns need not be contiguous: columns no feature takes
are ignored.
*/
func NewDomain(values map[string]string, columns map[string]int) (*Domain, error) {
	if len(values) != len(columns) {
		return nil, fmt.Errorf("building domain: %d features have values but %d have columns", len(values), len(columns))
	}
	features := make([]*Feature, 0, len(values))
	for name, vs := range values {
		column, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("building domain: feature %s has no column", name)
		}
		features = append(features, New(name, ParseValues(vs), column))
	}
	return Of(features...)
}

/*
Of takes features and returns a domain made of them. The features must
have unique non-empty names, at least one available value each and no
repeated values, and distinct non-negative columns. An error is returned
otherwise. Records of the domain have one value per column up to the
highest one a feature takes, see Width.

The domain keeps its own copies of the features, so the given ones can
still be used elsewhere.
*/
func Of(features ...*Feature) (*Domain, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("building domain: no features")
	}
	d := &Domain{
		features: make([]*Feature, 0, len(features)),
		byName:   make(map[string]*Feature, len(features)),
	}
	for _, f := range features {
		if f.name == "" {
			return nil, fmt.Errorf("building domain: feature with empty name")
		}
		if _, ok := d.byName[f.name]; ok {
			return nil, fmt.Errorf("building domain: duplicated feature %s", f.name)
		}
		if f.column < 0 {
			return nil, fmt.Errorf("building domain: feature %s has negative column %d", f.name, f.column)
		}
		if len(f.availableValues) == 0 {
			return nil, fmt.Errorf("building domain: feature %s has no available values", f.name)
		}
		seen := make(map[string]bool, len(f.availableValues))
		for _, v := range f.availableValues {
			if seen[v] {
				return nil, fmt.Errorf("building domain: feature %s declares value %q twice", f.name, v)
			}
			seen[v] = true
		}
		cf := New(f.name, f.availableValues, f.column)
		d.features = append(d.features, cf)
		d.byName[cf.name] = cf
	}
	sort.SliceStable(d.features, func(i, j int) bool {
		return d.features[i].column < d.features[j].column
	})
	for i, f := range d.features {
		if i > 0 && d.features[i-1].column == f.column {
			return nil, fmt.Errorf("building domain: features %s and %s share column %d", d.features[i-1].name, f.name, f.column)
		}
		f.index = i
	}
	d.width = d.features[len(d.features)-1].column + 1
	return d, nil
}

// Len returns the number of features in the domain.
func (d *Domain) Len() int {
	return len(d.features)
}

// Width returns the number of values records of the domain have: one more
// than the highest column of its features.
func (d *Domain) Width() int {
	return d.width
}

// Features returns the features of the domain in column order. The slice
// must not be modified.
func (d *Domain) Features() []*Feature {
	return d.features
}

// Names returns the names of the features of the domain in column order.
func (d *Domain) Names() []string {
	names := make([]string, len(d.features))
	for i, f := range d.features {
		names[i] = f.name
	}
	return names
}

// Lookup returns the feature of the domain with the given name, or nil.
func (d *Domain) Lookup(name string) *Feature {
	return d.byName[name]
}

// Columns returns the mapping of feature names to record columns.
func (d *Domain) Columns() Columns {
	columns := make(Columns, len(d.features))
	for _, f := range d.features {
		columns[f.name] = f.column
	}
	return columns
}

/*
Validate takes a record and returns nil if it has Width values and the
value on the column of every feature is available for it. Values on
columns no feature takes are not checked. Otherwise it returns an error
wrapping ErrColumnCount or ErrUnknownValue.
*/
func (d *Domain) Validate(record []string) error {
	if len(record) != d.width {
		return fmt.Errorf("%w: expected %d values, got %d", ErrColumnCount, d.width, len(record))
	}
	for _, f := range d.features {
		if err := f.Valid(record[f.column]); err != nil {
			return err
		}
	}
	return nil
}

// Sample returns a Sample that reads feature values from the given record.
func (d *Domain) Sample(record []string) Sample {
	return &recordSample{record: record, columns: d.Columns()}
}
