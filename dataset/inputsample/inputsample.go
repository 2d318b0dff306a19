/*
Package inputsample provides an implementation of feature.Sample whose
values are read from an io.Reader as they are requested, so that only the
features a prediction actually needs are asked for.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pbanos/id3/feature"
)

/*
FeatureValueRequester represents a way to ask for feature values and to
reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(*feature.Feature) error
	RejectValueFor(*feature.Feature, string) error
}

type readSample struct {
	obtainedValues        map[string]string
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	domain                *feature.Domain
}

/*
New takes an io.Reader, a domain and a FeatureValueRequester and returns
a feature.Sample.

The returned Sample ValueFor method reads feature values first requesting
them with the given FeatureValueRequester and then parsing them from the
reader, one per line. Lines holding values the feature does not declare
are rejected with the requester's RejectValueFor method and the next line
is read. Values are read once per feature and remembered.

Asking for the value of a feature not in the domain returns an error.
*/
func New(r io.Reader, d *feature.Domain, featureValueRequester FeatureValueRequester) feature.Sample {
	return &readSample{
		obtainedValues:        make(map[string]string),
		scanner:               bufio.NewScanner(r),
		featureValueRequester: featureValueRequester,
		domain:                d,
	}
}

func (rs *readSample) ValueFor(f *feature.Feature) (string, error) {
	if value, ok := rs.obtainedValues[f.Name()]; ok {
		return value, nil
	}
	known := rs.domain.Lookup(f.Name())
	if known == nil {
		return "", fmt.Errorf("%w: %s", feature.ErrUnknownFeature, f.Name())
	}
	if err := rs.featureValueRequester.RequestValueFor(known); err != nil {
		return "", err
	}
	for rs.scanner.Scan() {
		line := strings.TrimSpace(rs.scanner.Text())
		if known.Has(line) {
			rs.obtainedValues[known.Name()] = line
			return line, nil
		}
		if err := rs.featureValueRequester.RejectValueFor(known, line); err != nil {
			return "", err
		}
	}
	if err := rs.scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("EOF when requesting value for %s", known.Name())
}
