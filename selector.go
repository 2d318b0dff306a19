package id3

import (
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/impurity"
)

/*
BestAttribute takes a table of examples, the set of candidate features, the
domain they belong to and an impurity calculator, and returns the candidate
whose split yields the highest gain. Candidates are considered in domain
order and only a gain higher than the current best by more than
impurity.GainTolerance displaces it, so the first of several equally good
features wins even when rounding makes their gains differ slightly.

An error wrapping ErrEmptyExamples or ErrNoCandidates is returned if there
are no examples or no candidates.
*/
func BestAttribute(examples *dataset.Table, candidates feature.Set, d *feature.Domain, c *impurity.Calculator) (*feature.Feature, error) {
	if examples.Len() == 0 {
		return nil, ErrEmptyExamples
	}
	if candidates.Empty() {
		return nil, ErrNoCandidates
	}
	var best *feature.Feature
	var bestGain float64
	for _, f := range d.Features() {
		if !candidates.Contains(f) {
			continue
		}
		g := c.Gain(examples, f)
		if best == nil || g > bestGain+impurity.GainTolerance {
			best = f
			bestGain = g
		}
	}
	if best == nil {
		return nil, ErrNoCandidates
	}
	return best, nil
}
