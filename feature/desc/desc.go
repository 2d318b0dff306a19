/*
Package desc parses attribute description files: plain text documents
declaring each attribute on its own line as

	name: value1, value2, value3.

Lines starting with '|' open sections. Inside a section whose header
mentions "label", lines without a colon list the values of the label.
Inside a section whose header mentions "column", a comma-separated line
gives the order of the columns of data files, which may include the label.
Attributes not ordered by a columns section take their declaration order.
*/
package desc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pbanos/id3/feature"
)

// DefaultLabel is the name of the label column when no other is given.
const DefaultLabel = "label"

/*
Description holds the contents of an attribute description file: the
attribute domain descriptor pair (values and columns) and what it says
about the label.
*/
type Description struct {
	// Values maps attribute names to a comma-separated list of their
	// legal values.
	Values map[string]string
	// Columns maps attribute names to their zero-based column in records.
	Columns feature.Columns
	// Label is the name of the label column.
	Label string
	// LabelValues are the declared values of the label, if any.
	LabelValues []string
	// LabelColumn is the position of the label among data file columns,
	// or -1 when it is the last one.
	LabelColumn int
}

type section int

const (
	noSection section = iota
	labelSection
	columnSection
	otherSection
)

/*
Read takes an io.Reader with an attribute description and returns the
Description parsed from it, or an error if it cannot be read or declares
an attribute twice or orders columns inconsistently.
*/
func Read(r io.Reader) (*Description, error) {
	d := &Description{
		Values:      make(map[string]string),
		Columns:     make(feature.Columns),
		Label:       DefaultLabel,
		LabelColumn: -1,
	}
	var order []string
	var columns []string
	current := noSection
	scanner := bufio.NewScanner(r)
	for l := 1; scanner.Scan(); l++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "|") {
			current = sectionFor(line)
			continue
		}
		if name, values, ok := strings.Cut(line, ":"); ok {
			name = strings.TrimSpace(name)
			if name == d.Label {
				d.LabelValues = append(d.LabelValues, feature.ParseValues(values)...)
				continue
			}
			if _, dup := d.Values[name]; dup {
				return nil, fmt.Errorf("line %d: attribute %s declared twice", l, name)
			}
			d.Values[name] = strings.Join(feature.ParseValues(values), ",")
			order = append(order, name)
			continue
		}
		switch current {
		case labelSection:
			d.LabelValues = append(d.LabelValues, feature.ParseValues(line)...)
		case columnSection:
			columns = append(columns, feature.ParseValues(line)...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading attribute description: %v", err)
	}
	if len(columns) == 0 {
		for i, name := range order {
			d.Columns[name] = i
		}
		return d, nil
	}
	var c int
	for i, name := range columns {
		if name == d.Label {
			d.LabelColumn = i
			continue
		}
		if _, ok := d.Values[name]; !ok {
			return nil, fmt.Errorf("column %s is not a declared attribute", name)
		}
		d.Columns[name] = c
		c++
	}
	if d.LabelColumn == len(columns)-1 {
		d.LabelColumn = -1
	}
	if len(d.Columns) != len(d.Values) {
		return nil, fmt.Errorf("columns section lists %d attributes but %d are declared", len(d.Columns), len(d.Values))
	}
	return d, nil
}

// ReadFile opens the file at the given path and parses it with Read.
func ReadFile(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening attribute description %s: %v", path, err)
	}
	defer f.Close()
	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing attribute description %s: %v", path, err)
	}
	return d, nil
}

// Domain returns the attribute domain descriptor of the description.
func (d *Description) Domain() (*feature.Domain, error) {
	return feature.NewDomain(d.Values, d.Columns)
}

func sectionFor(header string) section {
	header = strings.ToLower(header)
	switch {
	case strings.Contains(header, "label"):
		return labelSection
	case strings.Contains(header, "column"):
		return columnSection
	default:
		return otherSection
	}
}
