/*
Package id3 grows decision trees over categorical features with the ID3
algorithm: examples are recursively partitioned on the feature whose split
reduces label impurity the most, until labels are unified, features are
exhausted or the depth budget runs out.
*/
package id3

import (
	"fmt"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/impurity"
	"github.com/pbanos/id3/tree"
	"go.uber.org/zap"
)

// Error represents an error on the inputs given to grow a tree.
type Error string

const (
	// ErrEmptyExamples is returned when there are no examples to learn
	// from where at least one is required.
	ErrEmptyExamples = Error("no examples to learn from")
	// ErrNoCandidates is returned when a split is requested with no
	// candidate features.
	ErrNoCandidates = Error("no candidate features to split on")
	// ErrInvalidDepth is returned for negative depth limits.
	ErrInvalidDepth = Error("depth limit must not be negative")
)

func (e Error) Error() string {
	return string(e)
}

// Unlimited is the depth limit that lets trees grow until labels are
// unified or features exhausted.
const Unlimited = 0

/*
Induce takes a table of examples, the set of candidate features to split
on, the domain of the examples' records, an impurity calculator and a
depth budget and returns the root of the tree grown from them.

The depth budget counts the levels left including the current one: with a
budget of 1 the tree is at most a single branch whose children are all
leaves with the majority label of the examples. A budget of Unlimited (0)
imposes no limit.

Records are validated against the domain first, so an error wrapping
feature.ErrUnknownValue or feature.ErrColumnCount is returned for records
with values outside it. An error wrapping ErrEmptyExamples is returned if
the table is empty and one wrapping ErrInvalidDepth for negative budgets.
*/
func Induce(examples *dataset.Table, candidates feature.Set, d *feature.Domain, c *impurity.Calculator, depth int) (tree.Node, error) {
	in := &inducer{domain: d, calc: c, logger: zap.NewNop()}
	return in.run(examples, candidates, depth)
}

/*
InduceTree grows a tree from the products of external loaders: a mapping
of serialized records to labels, a mapping of feature names to their
comma-separated legal values and a mapping of feature names to their
column on records. It uses every feature of the domain as candidate.
*/
func InduceTree(examples map[string]string, values map[string]string, columns map[string]int, m impurity.Measure, maxDepth int) (tree.Node, error) {
	d, err := feature.NewDomain(values, columns)
	if err != nil {
		return nil, err
	}
	t, err := dataset.FromMap(examples)
	if err != nil {
		return nil, err
	}
	c, err := impurity.New(m)
	if err != nil {
		return nil, err
	}
	return Induce(t, feature.All(d), d, c, maxDepth)
}

type inducer struct {
	domain *feature.Domain
	calc   *impurity.Calculator
	logger *zap.Logger
}

func (in *inducer) run(examples *dataset.Table, candidates feature.Set, depth int) (tree.Node, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	if examples.Len() == 0 {
		return nil, ErrEmptyExamples
	}
	if err := examples.Validate(in.domain); err != nil {
		return nil, err
	}
	return in.induce(examples, candidates, depth)
}

func (in *inducer) induce(examples *dataset.Table, candidates feature.Set, depth int) (tree.Node, error) {
	if label, ok := examples.UnifiedLabel(); ok {
		return tree.NewLeaf(label), nil
	}
	majority, err := examples.MajorityLabel()
	if err != nil {
		return nil, err
	}
	if candidates.Empty() {
		return tree.NewLeaf(majority), nil
	}
	root, err := BestAttribute(examples, candidates, in.domain, in.calc)
	if err != nil {
		return nil, err
	}
	in.logger.Debug("splitting examples",
		zap.String("feature", root.Name()),
		zap.Int("examples", examples.Len()),
		zap.Int("candidates", candidates.Len()),
		zap.Int("depth_budget", depth),
	)
	values := root.AvailableValues()
	children := make(map[string]tree.Node, len(values))
	if depth == 1 {
		for _, v := range values {
			children[v] = tree.NewLeaf(majority)
		}
		return tree.NewBranch(root, children)
	}
	next := Unlimited
	if depth > 1 {
		next = depth - 1
	}
	remaining := candidates.Without(root)
	for i, subset := range examples.Partition(root) {
		if subset.Len() == 0 {
			children[values[i]] = tree.NewLeaf(majority)
			continue
		}
		child, err := in.induce(subset, remaining, next)
		if err != nil {
			return nil, fmt.Errorf("growing subtree for %v: %w", feature.NewCriterion(root, values[i]), err)
		}
		children[values[i]] = child
	}
	return tree.NewBranch(root, children)
}
