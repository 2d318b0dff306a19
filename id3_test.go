package id3_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pbanos/id3"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/impurity"
	"github.com/pbanos/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	weatherExamples = map[string]string{
		"Sunny,Hot":  "No",
		"Sunny,Cold": "No",
		"Rainy,Hot":  "Yes",
		"Rainy,Cold": "Yes",
	}
	weatherValues  = map[string]string{"Weather": "Sunny,Rainy", "Temp": "Hot,Cold"}
	weatherColumns = map[string]int{"Weather": 0, "Temp": 1}
)

func calculator(t *testing.T, m impurity.Measure) *impurity.Calculator {
	t.Helper()
	c, err := impurity.New(m)
	require.NoError(t, err)
	return c
}

func domain(t *testing.T, values map[string]string, columns map[string]int) *feature.Domain {
	t.Helper()
	d, err := feature.NewDomain(values, columns)
	require.NoError(t, err)
	return d
}

func table(t *testing.T, examples ...dataset.Example) *dataset.Table {
	t.Helper()
	tb, err := dataset.FromExamples(examples...)
	require.NoError(t, err)
	return tb
}

func TestInduceTreeWeather(t *testing.T) {
	d := domain(t, weatherValues, weatherColumns)
	examples, err := dataset.FromMap(weatherExamples)
	require.NoError(t, err)

	for _, m := range impurity.Measures() {
		for _, depth := range []int{id3.Unlimited, 2, 3} {
			t.Run(fmt.Sprintf("%v/depth=%d", m, depth), func(t *testing.T) {
				root, err := id3.InduceTree(weatherExamples, weatherValues, weatherColumns, m, depth)
				require.NoError(t, err)

				b, ok := root.(*tree.Branch)
				require.True(t, ok, "root is %T", root)
				assert.Equal(t, "Weather", b.Feature().Name())
				assert.Equal(t, "Weather -- Sunny --> No\nWeather -- Rainy --> Yes", tree.Render(root))

				rate, err := tree.EvaluateErrorRate(root, examples, d.Columns())
				require.NoError(t, err)
				assert.Zero(t, rate)
			})
		}
	}
}

func TestInduceTreeIgnoresUndeclaredColumns(t *testing.T) {
	examples := map[string]string{
		"1,Sunny,Hot":  "No",
		"2,Sunny,Cold": "No",
		"3,Rainy,Hot":  "Yes",
		"4,Rainy,Cold": "Yes",
	}
	columns := map[string]int{"Weather": 1, "Temp": 2}
	root, err := id3.InduceTree(examples, weatherValues, columns, impurity.Entropy, id3.Unlimited)
	require.NoError(t, err)
	assert.Equal(t, "Weather -- Sunny --> No\nWeather -- Rainy --> Yes", tree.Render(root))

	label, err := tree.Predict(root, []string{"5", "Rainy", "Hot"}, columns)
	require.NoError(t, err)
	assert.Equal(t, "Yes", label)
}

func TestInduceUnifiedLabel(t *testing.T) {
	d := domain(t, weatherValues, weatherColumns)
	examples := table(t,
		dataset.Example{Record: []string{"Sunny", "Hot"}, Label: "Yes"},
		dataset.Example{Record: []string{"Rainy", "Cold"}, Label: "Yes"},
	)
	for _, m := range impurity.Measures() {
		for _, candidates := range []feature.Set{feature.All(d), feature.All(d).Without(d.Lookup("Temp"))} {
			root, err := id3.Induce(examples, candidates, d, calculator(t, m), id3.Unlimited)
			require.NoError(t, err)
			assert.Equal(t, tree.NewLeaf("Yes"), root)
		}
	}
}

func TestInduceDepthOneUsesMajorityOfWholeSet(t *testing.T) {
	examples := table(t,
		dataset.Example{Record: []string{"Sunny", "Hot"}, Label: "No"},
		dataset.Example{Record: []string{"Rainy", "Hot"}, Label: "Yes"},
		dataset.Example{Record: []string{"Rainy", "Cold"}, Label: "Yes"},
	)
	d := domain(t, weatherValues, weatherColumns)

	for _, m := range impurity.Measures() {
		t.Run(m.String(), func(t *testing.T) {
			root, err := id3.Induce(examples, feature.All(d), d, calculator(t, m), 1)
			require.NoError(t, err)

			b, ok := root.(*tree.Branch)
			require.True(t, ok, "root is %T", root)
			assert.Equal(t, "Weather", b.Feature().Name())
			for _, v := range b.Values() {
				child, ok := b.Child(v)
				require.True(t, ok)
				assert.Equal(t, tree.NewLeaf("Yes"), child, "child for %s", v)
			}
		})
	}
}

func TestInduceDepthOneTieMajority(t *testing.T) {
	// sorted keys put the Rainy examples first, so Yes is seen first
	root, err := id3.InduceTree(weatherExamples, weatherValues, weatherColumns, impurity.Entropy, 1)
	require.NoError(t, err)
	assert.Equal(t, "Weather -- Sunny --> Yes\nWeather -- Rainy --> Yes", tree.Render(root))
}

func TestInduceEmptySubsetUsesParentMajority(t *testing.T) {
	d := domain(t,
		map[string]string{"A": "a1,a2,a3", "B": "b1,b2"},
		map[string]int{"A": 0, "B": 1},
	)
	examples := table(t,
		dataset.Example{Record: []string{"a1", "b1"}, Label: "X"},
		dataset.Example{Record: []string{"a1", "b2"}, Label: "X"},
		dataset.Example{Record: []string{"a2", "b1"}, Label: "Y"},
	)
	for _, m := range impurity.Measures() {
		t.Run(m.String(), func(t *testing.T) {
			root, err := id3.Induce(examples, feature.All(d), d, calculator(t, m), id3.Unlimited)
			require.NoError(t, err)
			assert.Equal(t, "A -- a1 --> X\nA -- a2 --> Y\nA -- a3 --> X", tree.Render(root))
		})
	}
}

func TestInduceEmptySubsetDeeperInTheTree(t *testing.T) {
	d := domain(t,
		map[string]string{"A": "a1,a2", "B": "b1,b2,b3"},
		map[string]int{"A": 0, "B": 1},
	)
	examples := table(t,
		dataset.Example{Record: []string{"a1", "b1"}, Label: "X"},
		dataset.Example{Record: []string{"a1", "b2"}, Label: "X"},
		dataset.Example{Record: []string{"a1", "b3"}, Label: "X"},
		dataset.Example{Record: []string{"a2", "b1"}, Label: "Y"},
		dataset.Example{Record: []string{"a2", "b2"}, Label: "Z"},
		dataset.Example{Record: []string{"a2", "b1"}, Label: "Y"},
	)
	root, err := id3.Induce(examples, feature.All(d), d, calculator(t, impurity.Entropy), id3.Unlimited)
	require.NoError(t, err)

	// under A = a2 nobody has b3: its leaf takes the majority of the a2 examples
	want := strings.Join([]string{
		"A -- a1 --> X",
		"A -- a2 --> B -- b1 --> Y",
		"A -- a2 --> B -- b2 --> Z",
		"A -- a2 --> B -- b3 --> Y",
	}, "\n")
	assert.Equal(t, want, tree.Render(root))
}

func TestInduceExhaustedCandidates(t *testing.T) {
	d := domain(t, weatherValues, weatherColumns)
	examples := table(t,
		dataset.Example{Record: []string{"Sunny", "Hot"}, Label: "No"},
		dataset.Example{Record: []string{"Sunny", "Cold"}, Label: "Yes"},
		dataset.Example{Record: []string{"Rainy", "Cold"}, Label: "Yes"},
	)
	empty := feature.All(d).Without(d.Lookup("Weather")).Without(d.Lookup("Temp"))

	root, err := id3.Induce(examples, empty, d, calculator(t, impurity.Gini), id3.Unlimited)
	require.NoError(t, err)
	assert.Equal(t, tree.NewLeaf("Yes"), root)
}

func TestInducePerfectPredictor(t *testing.T) {
	d := domain(t,
		map[string]string{"A": "a1,a2", "B": "b1,b2"},
		map[string]int{"A": 0, "B": 1},
	)
	examples := table(t,
		dataset.Example{Record: []string{"a1", "b1"}, Label: "p"},
		dataset.Example{Record: []string{"a2", "b1"}, Label: "q"},
		dataset.Example{Record: []string{"a1", "b2"}, Label: "p"},
		dataset.Example{Record: []string{"a2", "b2"}, Label: "q"},
	)
	for _, m := range impurity.Measures() {
		t.Run(m.String(), func(t *testing.T) {
			root, err := id3.Induce(examples, feature.All(d), d, calculator(t, m), id3.Unlimited)
			require.NoError(t, err)
			require.Equal(t, "A", root.(*tree.Branch).Feature().Name())

			for _, e := range examples.Examples() {
				label, err := tree.Predict(root, e.Record, d.Columns())
				require.NoError(t, err)
				assert.Equal(t, e.Label, label)
			}
			rate, err := tree.EvaluateErrorRate(root, examples, d.Columns())
			require.NoError(t, err)
			assert.Zero(t, rate)
		})
	}
}

// gridExamples returns every record of three features with three values
// each, labeled by a function of all of them.
func gridExamples(t *testing.T) (*feature.Domain, *dataset.Table) {
	d := domain(t,
		map[string]string{"A": "0,1,2", "B": "0,1,2", "C": "0,1,2"},
		map[string]int{"A": 0, "B": 1, "C": 2},
	)
	labels := []string{"red", "green", "blue"}
	examples := dataset.New()
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			for c := 0; c < 3; c++ {
				record := []string{fmt.Sprint(a), fmt.Sprint(b), fmt.Sprint(c)}
				require.NoError(t, examples.Add(record, labels[(a*b+c*c+a)%3]))
			}
		}
	}
	return d, examples
}

func TestInduceDepthInvariant(t *testing.T) {
	d, examples := gridExamples(t)

	for _, m := range impurity.Measures() {
		for depth := 1; depth <= 4; depth++ {
			t.Run(fmt.Sprintf("%v/depth=%d", m, depth), func(t *testing.T) {
				root, err := id3.Induce(examples, feature.All(d), d, calculator(t, m), depth)
				require.NoError(t, err)
				assert.LessOrEqual(t, tree.Depth(root), depth)

				err = tree.Walk(root, func(path []feature.Criterion, n tree.Node) error {
					seen := make(map[string]bool)
					for _, c := range path {
						if seen[c.Feature().Name()] {
							return fmt.Errorf("feature %s split twice along %v", c.Feature().Name(), path)
						}
						seen[c.Feature().Name()] = true
					}
					if len(path) > depth {
						return fmt.Errorf("node at %d edges from the root", len(path))
					}
					return nil
				})
				assert.NoError(t, err)
			})
		}
	}
}

func TestInduceUnlimitedFitsTrainingSet(t *testing.T) {
	d, examples := gridExamples(t)
	for _, m := range impurity.Measures() {
		root, err := id3.Induce(examples, feature.All(d), d, calculator(t, m), id3.Unlimited)
		require.NoError(t, err)
		rate, err := tree.EvaluateErrorRate(root, examples, d.Columns())
		require.NoError(t, err)
		assert.Zero(t, rate, "measure %v", m)
	}
}

func TestInduceIsDeterministic(t *testing.T) {
	d, examples := gridExamples(t)

	paths := func(root tree.Node) []string {
		var result []string
		_ = tree.Walk(root, func(path []feature.Criterion, n tree.Node) error {
			if l, ok := n.(*tree.Leaf); ok {
				result = append(result, fmt.Sprintf("%v => %s", path, l.Label))
			}
			return nil
		})
		return result
	}
	for _, m := range impurity.Measures() {
		first, err := id3.Induce(examples, feature.All(d), d, calculator(t, m), 3)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := id3.Induce(examples, feature.All(d), d, calculator(t, m), 3)
			require.NoError(t, err)
			if diff := cmp.Diff(paths(first), paths(again)); diff != "" {
				t.Fatalf("%v tree changed between runs (-first +again):\n%s", m, diff)
			}
			assert.Equal(t, tree.Render(first), tree.Render(again))
		}
	}
}

func TestInduceErrors(t *testing.T) {
	d := domain(t, weatherValues, weatherColumns)
	c := calculator(t, impurity.Entropy)
	examples := table(t, dataset.Example{Record: []string{"Sunny", "Hot"}, Label: "No"})

	_, err := id3.Induce(examples, feature.All(d), d, c, -1)
	assert.ErrorIs(t, err, id3.ErrInvalidDepth)

	_, err = id3.Induce(dataset.New(), feature.All(d), d, c, id3.Unlimited)
	assert.ErrorIs(t, err, id3.ErrEmptyExamples)

	foggy := table(t, dataset.Example{Record: []string{"Foggy", "Hot"}, Label: "No"})
	_, err = id3.Induce(foggy, feature.All(d), d, c, id3.Unlimited)
	assert.ErrorIs(t, err, feature.ErrUnknownValue)

	short := table(t, dataset.Example{Record: []string{"Sunny"}, Label: "No"})
	_, err = id3.Induce(short, feature.All(d), d, c, id3.Unlimited)
	assert.ErrorIs(t, err, feature.ErrColumnCount)

	_, err = id3.InduceTree(map[string]string{"Sunny,Hot": "No", "Sunny, Hot": "Yes"}, weatherValues, weatherColumns, impurity.Gini, 0)
	assert.ErrorIs(t, err, dataset.ErrConflictingLabel)

	_, err = id3.InduceTree(weatherExamples, weatherValues, map[string]int{"Weather": 0}, impurity.Gini, 0)
	assert.Error(t, err)
}
