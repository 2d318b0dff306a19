/*
Package yaml provides methods to parse feature.Domain descriptions,
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/pbanos/id3/feature"
	yaml "gopkg.in/yaml.v2"
)

type metadata struct {
	Label    string            `yaml:"label"`
	Features []featureMetadata `yaml:"features"`
}

type featureMetadata struct {
	Name   string      `yaml:"name"`
	Values interface{} `yaml:"values"`
	Column *int        `yaml:"column"`
}

/*
ReadDomain takes a slice of bytes with a domain description in YAML and
returns the domain parsed from it along with the name of the label, or an
error.
The YAML is expected to be an object with an optional label property and a
features property. The value of the latter must be a list of objects with
a name, the values of the feature either as a list or as a comma-separated
string, and optionally the column of the feature in records. Features
without a column take their position on the list.
*/
func ReadDomain(md []byte) (*feature.Domain, string, error) {
	m := &metadata{}
	err := yaml.Unmarshal(md, m)
	if err != nil {
		return nil, "", fmt.Errorf("parsing yml features: %v", err)
	}
	if len(m.Features) == 0 {
		return nil, "", fmt.Errorf("metadata has no feature information")
	}
	features := make([]*feature.Feature, 0, len(m.Features))
	for i, fm := range m.Features {
		var values []string
		switch vs := fm.Values.(type) {
		case string:
			values = feature.ParseValues(vs)
		case []interface{}:
			for _, v := range vs {
				values = append(values, fmt.Sprintf("%v", v))
			}
		default:
			return nil, "", fmt.Errorf("invalid values declaration of type %T for feature %q", fm.Values, fm.Name)
		}
		column := i
		if fm.Column != nil {
			column = *fm.Column
		}
		features = append(features, feature.New(fm.Name, values, column))
	}
	d, err := feature.Of(features...)
	if err != nil {
		return nil, "", err
	}
	if m.Label != "" && d.Lookup(m.Label) != nil {
		return nil, "", fmt.Errorf("label %s cannot also be a feature", m.Label)
	}
	return d, m.Label, nil
}

/*
ReadDomainFromFile takes a filepath string, reads its contents and uses
ReadDomain to parse it and return the domain and label name or an error.
*/
func ReadDomainFromFile(filepath string) (*feature.Domain, string, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, "", fmt.Errorf("reading features yml file %s: %v", filepath, err)
	}
	d, label, err := ReadDomain(md)
	if err != nil {
		err = fmt.Errorf("parsing features yml file %s: %v", filepath, err)
	}
	return d, label, err
}
