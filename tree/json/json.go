/*
Package json encodes trees as JSON documents and decodes them back.

A tree is serialized as a JSON object with the following fields:
  - "label": the name of the label the tree predicts
  - "measure": the impurity measure the tree was grown with
  - "maxDepth": the depth limit the tree was grown with (0 if unlimited)
  - "root": the root node

A leaf node is an object with a "label" field. A branch node is an object
with a "feature" field naming the feature it tests and a "children" array
with an object per value of the feature holding the "value" and the
"node" for it.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/impurity"
	"github.com/pbanos/id3/tree"
)

type jsonTree struct {
	Label    string    `json:"label,omitempty"`
	Measure  string    `json:"measure"`
	MaxDepth int       `json:"maxDepth"`
	Root     *jsonNode `json:"root"`
}

type jsonNode struct {
	Label    *string    `json:"label,omitempty"`
	Feature  string     `json:"feature,omitempty"`
	Children []jsonEdge `json:"children,omitempty"`
}

type jsonEdge struct {
	Value string    `json:"value"`
	Node  *jsonNode `json:"node"`
}

// Marshal returns the JSON encoding of the given tree.
func Marshal(t *tree.Tree) ([]byte, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("encoding tree: empty tree")
	}
	root, err := encodeNode(t.Root)
	if err != nil {
		return nil, fmt.Errorf("encoding tree: %v", err)
	}
	return json.Marshal(&jsonTree{
		Label:    t.Label,
		Measure:  t.Measure.String(),
		MaxDepth: t.MaxDepth,
		Root:     root,
	})
}

/*
Unmarshal takes the JSON encoding of a tree and the domain of the features
it tests and returns the decoded tree. Branches are checked against the
domain: an error is returned if a branch tests an unknown feature, or its
children do not cover exactly the values the domain declares for it.
*/
func Unmarshal(data []byte, d *feature.Domain) (*tree.Tree, error) {
	jt := &jsonTree{}
	if err := json.Unmarshal(data, jt); err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	return decodeTree(jt, d)
}

// Write serializes the given tree as JSON onto the io.Writer.
func Write(w io.Writer, t *tree.Tree) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read decodes a JSON tree from the io.Reader (see Unmarshal).
func Read(r io.Reader, d *feature.Domain) (*tree.Tree, error) {
	jt := &jsonTree{}
	if err := json.NewDecoder(r).Decode(jt); err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	return decodeTree(jt, d)
}

func decodeTree(jt *jsonTree, d *feature.Domain) (*tree.Tree, error) {
	if jt.Root == nil {
		return nil, fmt.Errorf("decoding tree: no root node")
	}
	m, err := impurity.ParseMeasure(jt.Measure)
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	root, err := decodeNode(jt.Root, d)
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	return &tree.Tree{Root: root, Label: jt.Label, Measure: m, MaxDepth: jt.MaxDepth}, nil
}

func encodeNode(n tree.Node) (*jsonNode, error) {
	switch node := n.(type) {
	case *tree.Leaf:
		label := node.Label
		return &jsonNode{Label: &label}, nil
	case *tree.Branch:
		jn := &jsonNode{Feature: node.Feature().Name()}
		for _, v := range node.Values() {
			child, _ := node.Child(v)
			jc, err := encodeNode(child)
			if err != nil {
				return nil, err
			}
			jn.Children = append(jn.Children, jsonEdge{Value: v, Node: jc})
		}
		return jn, nil
	}
	return nil, fmt.Errorf("unexpected node %T", n)
}

func decodeNode(jn *jsonNode, d *feature.Domain) (tree.Node, error) {
	if jn.Feature == "" {
		if jn.Label == nil {
			return nil, fmt.Errorf("node has neither feature nor label")
		}
		return tree.NewLeaf(*jn.Label), nil
	}
	f := d.Lookup(jn.Feature)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", feature.ErrUnknownFeature, jn.Feature)
	}
	children := make(map[string]tree.Node, len(jn.Children))
	for _, e := range jn.Children {
		if _, ok := children[e.Value]; ok {
			return nil, fmt.Errorf("feature %s has two children for value %q", f.Name(), e.Value)
		}
		if e.Node == nil {
			return nil, fmt.Errorf("feature %s has no node for value %q", f.Name(), e.Value)
		}
		child, err := decodeNode(e.Node, d)
		if err != nil {
			return nil, err
		}
		children[e.Value] = child
	}
	return tree.NewBranch(f, children)
}
