package tree

import (
	"fmt"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

/*
Predict takes the root node of a tree, a record and the columns on which
the record holds each feature's value, and returns the label the tree
predicts for the record.

An error wrapping feature.ErrUnknownValue is returned when the record
carries a value its feature does not declare, and one wrapping
ErrMissingChild if a branch has no child for a legal value.
*/
func Predict(n Node, record []string, columns feature.Columns) (string, error) {
	return PredictSample(n, feature.NewSample(record, columns))
}

/*
PredictSample walks the tree from the given node asking the sample for
the value of each feature a branch tests, and returns the label of the
leaf it reaches. Only the values of the features along the followed path
are requested.
*/
func PredictSample(n Node, s feature.Sample) (string, error) {
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Label, nil
		case *Branch:
			f := node.feature
			value, err := s.ValueFor(f)
			if err != nil {
				return "", fmt.Errorf("predicting sample: %w", err)
			}
			child, ok := node.children[value]
			if !ok {
				if f.Has(value) {
					return "", fmt.Errorf("predicting sample: %w: feature %s value %q", ErrMissingChild, f.Name(), value)
				}
				return "", fmt.Errorf("predicting sample: %w", f.Valid(value))
			}
			n = child
		default:
			return "", fmt.Errorf("predicting sample: unexpected node %T", n)
		}
	}
}

/*
EvaluateErrorRate takes the root node of a tree, a dataset and the columns
of its records, predicts the label of every example and returns the
fraction of them for which the prediction does not match the label.

An error wrapping ErrEmptyDataset is returned for empty datasets, and the
first prediction error is returned if any prediction fails.
*/
func EvaluateErrorRate(n Node, t *dataset.Table, columns feature.Columns) (float64, error) {
	if t.Len() == 0 {
		return 0, ErrEmptyDataset
	}
	var mismatches int
	for _, e := range t.Examples() {
		label, err := Predict(n, e.Record, columns)
		if err != nil {
			return 0, fmt.Errorf("evaluating record %q: %w", dataset.Key(e.Record), err)
		}
		if label != e.Label {
			mismatches++
		}
	}
	return float64(mismatches) / float64(t.Len()), nil
}
