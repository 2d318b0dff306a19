package tree

import (
	"fmt"

	"github.com/pbanos/id3/feature"
)

/*
Node is a node of a decision tree: either a *Leaf holding the label it
predicts or a *Branch splitting on a feature. No other implementations
exist.
*/
type Node interface {
	node()
}

// Leaf is a terminal node predicting a single label.
type Leaf struct {
	Label string
}

/*
Branch is a node that tests a feature and has a child for each of the
feature's available values. Branches are built with NewBranch and never
change afterwards; each branch exclusively owns its children.
*/
type Branch struct {
	feature  *feature.Feature
	children map[string]Node
}

// Error represents an error related with the structure or use of a tree.
type Error string

const (
	// ErrMissingChild is returned when a branch has no child for a value
	// its feature declares legal. Trees built by NewBranch never have one.
	ErrMissingChild = Error("branch has no child for legal value")
	// ErrEmptyDataset is returned when evaluating a tree against a
	// dataset with no examples.
	ErrEmptyDataset = Error("cannot evaluate tree against empty dataset")
)

func (e Error) Error() string {
	return string(e)
}

func (*Leaf) node()   {}
func (*Branch) node() {}

// NewLeaf returns a leaf predicting the given label.
func NewLeaf(label string) *Leaf {
	return &Leaf{Label: label}
}

/*
NewBranch takes a feature and a map of its values to child nodes and
returns a branch with them. Every available value of the feature must map
to a non-nil node, otherwise an error wrapping ErrMissingChild is returned.
Keys that are not available values of the feature produce an error
wrapping feature.ErrUnknownValue.
*/
func NewBranch(f *feature.Feature, children map[string]Node) (*Branch, error) {
	b := &Branch{feature: f, children: make(map[string]Node, len(children))}
	for _, v := range f.AvailableValues() {
		child := children[v]
		if child == nil {
			return nil, fmt.Errorf("%w: feature %s value %q", ErrMissingChild, f.Name(), v)
		}
		b.children[v] = child
	}
	if len(children) != len(b.children) {
		for v := range children {
			if !f.Has(v) {
				return nil, fmt.Errorf("branching on feature %s: %w", f.Name(), f.Valid(v))
			}
		}
	}
	return b, nil
}

// Feature returns the feature the branch tests.
func (b *Branch) Feature() *feature.Feature {
	return b.feature
}

// Child returns the node for the given value of the branch's feature, and
// whether there is one.
func (b *Branch) Child(value string) (Node, bool) {
	n, ok := b.children[value]
	return n, ok
}

// Values returns the values the branch has children for, in the order
// its feature declares them.
func (b *Branch) Values() []string {
	return b.feature.AvailableValues()
}
