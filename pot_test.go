package id3_test

import (
	"testing"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/impurity"
	"github.com/pbanos/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPotGrow(t *testing.T) {
	d := domain(t, weatherValues, weatherColumns)
	examples, err := dataset.FromMap(weatherExamples)
	require.NoError(t, err)

	p, err := id3.New(d, id3.WithMeasure(impurity.Gini), id3.WithMaxDepth(2), id3.WithLabel("play"))
	require.NoError(t, err)
	assert.Same(t, d, p.Domain())

	grown, err := p.Grow(examples)
	require.NoError(t, err)
	assert.Equal(t, "play", grown.Label)
	assert.Equal(t, impurity.Gini, grown.Measure)
	assert.Equal(t, 2, grown.MaxDepth)
	assert.Equal(t, "Weather -- Sunny --> No\nWeather -- Rainy --> Yes", grown.String())

	label, err := grown.Predict([]string{"Rainy", "Hot"}, d.Columns())
	require.NoError(t, err)
	assert.Equal(t, "Yes", label)

	rate, err := grown.Test(examples, d.Columns())
	require.NoError(t, err)
	assert.Zero(t, rate)
}

func TestPotWithFeatures(t *testing.T) {
	d := domain(t, weatherValues, weatherColumns)
	examples, err := dataset.FromMap(weatherExamples)
	require.NoError(t, err)

	p, err := id3.New(d, id3.WithFeatures("Temp"))
	require.NoError(t, err)
	grown, err := p.Grow(examples)
	require.NoError(t, err)
	assert.Equal(t, "Temp -- Hot --> Yes\nTemp -- Cold --> Yes", tree.Render(grown.Root))

	_, err = id3.New(d, id3.WithFeatures("Wind"))
	assert.ErrorIs(t, err, feature.ErrUnknownFeature)
}

func TestPotLogsSplits(t *testing.T) {
	d := domain(t, weatherValues, weatherColumns)
	examples, err := dataset.FromMap(weatherExamples)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	p, err := id3.New(d, id3.WithLogger(zap.New(core)))
	require.NoError(t, err)
	_, err = p.Grow(examples)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("growing tree").Len())
	splits := logs.FilterMessage("splitting examples").All()
	require.Len(t, splits, 1)
	assert.Equal(t, "Weather", splits[0].ContextMap()["feature"])
}

func TestPotErrors(t *testing.T) {
	d := domain(t, weatherValues, weatherColumns)

	_, err := id3.New(d, id3.WithMaxDepth(-2))
	assert.ErrorIs(t, err, id3.ErrInvalidDepth)

	_, err = id3.New(d, id3.WithLogBase(1))
	assert.Error(t, err)

	p, err := id3.New(d, id3.WithLogger(nil))
	require.NoError(t, err)
	_, err = p.Grow(dataset.New())
	assert.ErrorIs(t, err, id3.ErrEmptyExamples)
	assert.Contains(t, err.Error(), "growing tree")
}
