/*
Package tree provides decision trees over categorical features: their
nodes, the prediction of labels for records and the evaluation of trees
against labeled datasets.
*/
package tree

import (
	"fmt"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/impurity"
)

// Tree represents a decision tree: its root node along with the name of
// the label it predicts and how it was grown.
type Tree struct {
	Root     Node
	Label    string
	Measure  impurity.Measure
	MaxDepth int
}

// Predict takes a record and the columns of its features and returns the
// label the tree predicts for it, or an error (see Predict).
func (t *Tree) Predict(record []string, columns feature.Columns) (string, error) {
	if t == nil || t.Root == nil {
		return "", fmt.Errorf("empty tree cannot predict records")
	}
	return Predict(t.Root, record, columns)
}

// Test returns the error rate of the tree over the given dataset (see
// EvaluateErrorRate).
func (t *Tree) Test(s *dataset.Table, columns feature.Columns) (float64, error) {
	if t == nil || t.Root == nil {
		return 0, fmt.Errorf("empty tree cannot be tested")
	}
	return EvaluateErrorRate(t.Root, s, columns)
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return Render(t.Root)
}

/*
Render returns a human-readable dump of the tree under the given node.
A leaf renders as its label. A branch renders one line per child as

	<feature> -- <value> --> <child rendering>

where a child branch contributes one such line per line of its own
rendering, so that every line describes a path from the node to a leaf.
*/
func Render(n Node) string {
	return strings.Join(renderLines(n), "\n")
}

func renderLines(n Node) []string {
	switch node := n.(type) {
	case *Leaf:
		return []string{node.Label}
	case *Branch:
		var lines []string
		for _, v := range node.Values() {
			prefix := fmt.Sprintf("%s -- %s --> ", node.feature.Name(), v)
			for _, l := range renderLines(node.children[v]) {
				lines = append(lines, prefix+l)
			}
		}
		return lines
	}
	return []string{fmt.Sprintf("<%T>", n)}
}

// Depth returns the number of edges on the longest path from the given
// node to a leaf.
func Depth(n Node) int {
	b, ok := n.(*Branch)
	if !ok {
		return 0
	}
	var max int
	for _, v := range b.Values() {
		if d := Depth(b.children[v]); d > max {
			max = d
		}
	}
	return max + 1
}

// Leaves returns the number of leaves under the given node.
func Leaves(n Node) int {
	b, ok := n.(*Branch)
	if !ok {
		return 1
	}
	var count int
	for _, v := range b.Values() {
		count += Leaves(b.children[v])
	}
	return count
}

/*
Walk goes through the tree under the given node calling f with every
node, parents before their children and children in value order. The
criteria passed along with a node are the ones leading to it from the
given node. If f returns an error the walk is aborted and the error
returned.
*/
func Walk(n Node, f func(path []feature.Criterion, n Node) error) error {
	return walk(nil, n, f)
}

func walk(path []feature.Criterion, n Node, f func([]feature.Criterion, Node) error) error {
	if err := f(path, n); err != nil {
		return err
	}
	b, ok := n.(*Branch)
	if !ok {
		return nil
	}
	for _, v := range b.Values() {
		childPath := make([]feature.Criterion, len(path), len(path)+1)
		copy(childPath, path)
		childPath = append(childPath, feature.NewCriterion(b.feature, v))
		if err := walk(childPath, b.children[v], f); err != nil {
			return err
		}
	}
	return nil
}
