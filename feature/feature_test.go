package feature_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pbanos/id3/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func carDomain(t *testing.T) *feature.Domain {
	t.Helper()
	d, err := feature.NewDomain(
		map[string]string{
			"buying":  "vhigh, high, med, low.",
			"doors":   "2, 3, 4, 5more.",
			"safety":  "low, med, high.",
			"persons": "2, 4, more.",
		},
		map[string]int{"buying": 0, "doors": 1, "persons": 2, "safety": 3},
	)
	require.NoError(t, err)
	return d
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"vhigh, high, med, low.", []string{"vhigh", "high", "med", "low"}},
		{" Sunny,Rainy ", []string{"Sunny", "Rainy"}},
		{"a,,b", []string{"a", "b"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, feature.ParseValues(tt.in)); diff != "" {
				t.Errorf("ParseValues(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestNewDomainOrdersFeaturesByColumn(t *testing.T) {
	d := carDomain(t)

	assert.Equal(t, 4, d.Len())
	assert.Equal(t, []string{"buying", "doors", "persons", "safety"}, d.Names())
	assert.Equal(t, feature.Columns{"buying": 0, "doors": 1, "persons": 2, "safety": 3}, d.Columns())

	safety := d.Lookup("safety")
	require.NotNil(t, safety)
	assert.Equal(t, 3, safety.Column())
	assert.Equal(t, []string{"low", "med", "high"}, safety.AvailableValues())
	assert.Nil(t, d.Lookup("class"))
}

func TestNewDomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		columns map[string]int
	}{
		{"missing column", map[string]string{"a": "x,y", "b": "x"}, map[string]int{"a": 0, "c": 1}},
		{"size mismatch", map[string]string{"a": "x,y"}, map[string]int{"a": 0, "b": 1}},
		{"negative column", map[string]string{"a": "x,y", "b": "x"}, map[string]int{"a": -1, "b": 2}},
		{"repeated column", map[string]string{"a": "x,y", "b": "x"}, map[string]int{"a": 0, "b": 0}},
		{"no values", map[string]string{"a": " . "}, map[string]int{"a": 0}},
		{"repeated value", map[string]string{"a": "x,y,x"}, map[string]int{"a": 0}},
		{"empty", map[string]string{}, map[string]int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := feature.NewDomain(tt.values, tt.columns)
			assert.Error(t, err)
		})
	}
}

func TestDomainWithIgnoredColumns(t *testing.T) {
	d, err := feature.NewDomain(
		map[string]string{"Weather": "Sunny,Rainy", "Temp": "Hot,Cold"},
		map[string]int{"Weather": 1, "Temp": 3},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 4, d.Width())
	assert.Equal(t, []string{"Weather", "Temp"}, d.Names())

	assert.NoError(t, d.Validate([]string{"id-1", "Sunny", "anything", "Cold"}))
	assert.ErrorIs(t, d.Validate([]string{"id-1", "Sunny", "Cold"}), feature.ErrColumnCount)
	assert.ErrorIs(t, d.Validate([]string{"id-1", "Snowy", "x", "Cold"}), feature.ErrUnknownValue)

	set := feature.All(d)
	assert.Equal(t, 2, set.Len())
	v, err := d.Sample([]string{"id-1", "Rainy", "x", "Hot"}).ValueFor(d.Lookup("Temp"))
	require.NoError(t, err)
	assert.Equal(t, "Hot", v)
}

func TestOfCopiesFeatures(t *testing.T) {
	f := feature.New("a", []string{"x", "y"}, 0)
	d, err := feature.Of(f)
	require.NoError(t, err)
	assert.NotSame(t, f, d.Lookup("a"))
	assert.Equal(t, f.AvailableValues(), d.Lookup("a").AvailableValues())
}

func TestDomainValidate(t *testing.T) {
	d := carDomain(t)

	assert.NoError(t, d.Validate([]string{"low", "2", "more", "high"}))

	err := d.Validate([]string{"low", "2", "more"})
	assert.True(t, errors.Is(err, feature.ErrColumnCount), "got %v", err)

	err = d.Validate([]string{"low", "2", "more", "extreme"})
	assert.True(t, errors.Is(err, feature.ErrUnknownValue), "got %v", err)
	assert.Contains(t, err.Error(), "safety")
}

func TestFeatureValid(t *testing.T) {
	f := feature.New("Weather", []string{"Sunny", "Rainy"}, 0)
	assert.True(t, f.Has("Sunny"))
	assert.False(t, f.Has("sunny"))
	assert.NoError(t, f.Valid("Rainy"))
	assert.ErrorIs(t, f.Valid("Foggy"), feature.ErrUnknownValue)
	assert.Equal(t, "Weather", f.String())
}

func TestCriterion(t *testing.T) {
	d := carDomain(t)
	c := feature.NewCriterion(d.Lookup("persons"), "4")

	assert.Equal(t, "persons is 4", c.String())
	assert.Equal(t, "4", c.Value())
	assert.Same(t, d.Lookup("persons"), c.Feature())
	assert.True(t, c.SatisfiedBy([]string{"low", "2", "4", "high"}))
	assert.False(t, c.SatisfiedBy([]string{"low", "4", "2", "high"}))
	assert.False(t, c.SatisfiedBy([]string{"low", "4"}))
}

func TestRecordSample(t *testing.T) {
	d := carDomain(t)
	s := d.Sample([]string{"med", "3", "more", "low"})

	v, err := s.ValueFor(d.Lookup("doors"))
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	_, err = s.ValueFor(feature.New("class", []string{"acc"}, 4))
	assert.ErrorIs(t, err, feature.ErrUnknownFeature)

	short := feature.NewSample([]string{"med"}, d.Columns())
	_, err = short.ValueFor(d.Lookup("safety"))
	assert.ErrorIs(t, err, feature.ErrColumnCount)
}
