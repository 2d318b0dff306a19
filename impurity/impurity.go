/*
Package impurity implements the measures used to score how mixed the
labels of a set of examples are, and how much splitting it on a feature
reduces that mix.
*/
package impurity

import (
	"fmt"
	"math"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

// DefaultLogBase is the base of the logarithm the entropy measure uses
// unless told otherwise.
const DefaultLogBase = 4.0

// GainTolerance is the margin under which two gains are taken as equal.
// Gains closer to zero than this are reported as zero.
const GainTolerance = 1e-12

/*
Calculator computes impurities and gains under a measure.
*/
type Calculator struct {
	measure Measure
	logBase float64
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogBase sets the base of the logarithm of the entropy measure. It
// has no effect on the other measures.
func WithLogBase(base float64) Option {
	return func(c *Calculator) {
		c.logBase = base
	}
}

/*
New takes a measure and options and returns a calculator for it, or an
error if the measure is unknown or the logarithm base is not a positive
number other than 1.
*/
func New(m Measure, opts ...Option) (*Calculator, error) {
	if m < Entropy || m > MajorityError {
		return nil, fmt.Errorf("unknown impurity measure %v", m)
	}
	c := &Calculator{measure: m, logBase: DefaultLogBase}
	for _, opt := range opts {
		opt(c)
	}
	if c.logBase <= 0 || c.logBase == 1 || math.IsNaN(c.logBase) || math.IsInf(c.logBase, 0) {
		return nil, fmt.Errorf("invalid logarithm base %v", c.logBase)
	}
	return c, nil
}

// Measure returns the measure of the calculator.
func (c *Calculator) Measure() Measure {
	return c.measure
}

// LogBase returns the base of the logarithm used by the entropy measure.
func (c *Calculator) LogBase() float64 {
	return c.logBase
}

/*
Of takes label counts and returns their impurity: a non-negative number
that is 0 if and only if there is a single label. Empty counts have no
impurity.
*/
func (c *Calculator) Of(counts dataset.Counts) float64 {
	total := float64(counts.Total())
	if total == 0 {
		return 0
	}
	switch c.measure {
	case Gini:
		result := 1.0
		for _, lc := range counts {
			p := float64(lc.N) / total
			result -= p * p
		}
		return math.Max(result, 0)
	case MajorityError:
		_, max := counts.Majority()
		return (total - float64(max)) / total
	default:
		var result float64
		lnBase := math.Log(c.logBase)
		for _, lc := range counts {
			if lc.N == 0 {
				continue
			}
			p := float64(lc.N) / total
			result -= p * math.Log(p) / lnBase
		}
		return math.Max(result, 0)
	}
}

// Impurity returns the impurity of the labels of the given table.
func (c *Calculator) Impurity(t *dataset.Table) float64 {
	return c.Of(t.LabelCounts())
}

/*
SplitImpurity returns the impurity left after splitting the table on the
given feature: the impurity of each subset the feature's values define,
weighted by the subset's share of the table's examples.
*/
func (c *Calculator) SplitImpurity(t *dataset.Table, f *feature.Feature) float64 {
	total := float64(t.Len())
	if total == 0 {
		return 0
	}
	var result float64
	for _, subset := range t.Partition(f) {
		if subset.Len() == 0 {
			continue
		}
		result += float64(subset.Len()) / total * c.Impurity(subset)
	}
	return result
}

// Gain returns how much splitting the table on the given feature reduces
// its impurity. It is never negative.
func (c *Calculator) Gain(t *dataset.Table, f *feature.Feature) float64 {
	return gain(c.Impurity(t), c.SplitImpurity(t, f))
}

func gain(before, after float64) float64 {
	g := before - after
	if g < GainTolerance {
		return 0
	}
	return g
}
