package impurity

import (
	"fmt"
	"strings"
)

// Measure identifies one of the available impurity measures.
type Measure int

const (
	// Entropy scores impurity as -Σ p·log(p) over label proportions.
	Entropy Measure = iota
	// Gini scores impurity as 1 - Σ p² over label proportions.
	Gini
	// MajorityError scores impurity as the fraction of examples not
	// carrying the most frequent label.
	MajorityError
)

var measureNames = [...]string{
	Entropy:       "entropy",
	Gini:          "gini",
	MajorityError: "majority-error",
}

// Measures returns every available measure.
func Measures() []Measure {
	return []Measure{Entropy, Gini, MajorityError}
}

func (m Measure) String() string {
	if m < 0 || int(m) >= len(measureNames) {
		return fmt.Sprintf("Measure(%d)", int(m))
	}
	return measureNames[m]
}

/*
ParseMeasure takes the name of a measure and returns it. Besides the names
returned by String, "information-gain", "ig", "gi" and "me" are accepted.
Names are case insensitive.
*/
func ParseMeasure(s string) (Measure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entropy", "information-gain", "ig":
		return Entropy, nil
	case "gini", "gi":
		return Gini, nil
	case "majority-error", "majorityerror", "me":
		return MajorityError, nil
	}
	return 0, fmt.Errorf("unknown impurity measure %q", s)
}

// Set parses s into the measure, so that it can be used as a command line
// flag value.
func (m *Measure) Set(s string) error {
	pm, err := ParseMeasure(s)
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

// Type returns the name of the flag value type.
func (m *Measure) Type() string {
	return "measure"
}

// UnmarshalYAML parses a measure from its name in YAML documents.
func (m *Measure) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return m.Set(s)
}

// MarshalYAML encodes the measure as its name.
func (m Measure) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}
