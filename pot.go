package id3

import (
	"fmt"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/impurity"
	"github.com/pbanos/id3/tree"
	"go.uber.org/zap"
)

/*
Pot represents the context in which trees are grown: the domain of the
records, the measure used to choose splits, the features available to
split on and the depth limit.

Its Grow method takes a table of examples and returns a tree that predicts
their labels.
*/
type Pot struct {
	domain     *feature.Domain
	calc       *impurity.Calculator
	candidates feature.Set
	maxDepth   int
	label      string
	logger     *zap.Logger
}

type potConfig struct {
	measure  impurity.Measure
	logBase  float64
	maxDepth int
	features []string
	label    string
	logger   *zap.Logger
}

// Option configures a Pot.
type Option func(*potConfig)

// WithMeasure sets the impurity measure used to choose splits. Entropy is
// used by default.
func WithMeasure(m impurity.Measure) Option {
	return func(c *potConfig) {
		c.measure = m
	}
}

// WithLogBase sets the base of the logarithm of the entropy measure,
// impurity.DefaultLogBase by default.
func WithLogBase(base float64) Option {
	return func(c *potConfig) {
		c.logBase = base
	}
}

// WithMaxDepth limits the number of levels of grown trees. Unlimited by
// default.
func WithMaxDepth(depth int) Option {
	return func(c *potConfig) {
		c.maxDepth = depth
	}
}

// WithFeatures restricts the features trees may split on to the named
// ones. All features of the domain are used by default.
func WithFeatures(names ...string) Option {
	return func(c *potConfig) {
		c.features = names
	}
}

// WithLabel sets the name of the label grown trees predict.
func WithLabel(name string) Option {
	return func(c *potConfig) {
		c.label = name
	}
}

// WithLogger sets a logger on which split decisions are reported at debug
// level.
func WithLogger(l *zap.Logger) Option {
	return func(c *potConfig) {
		c.logger = l
	}
}

/*
New takes a domain and options and returns a Pot that grows trees with
them, or an error if the options are invalid.
*/
func New(d *feature.Domain, opts ...Option) (*Pot, error) {
	cfg := &potConfig{
		measure: impurity.Entropy,
		logBase: impurity.DefaultLogBase,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.maxDepth < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, cfg.maxDepth)
	}
	calc, err := impurity.New(cfg.measure, impurity.WithLogBase(cfg.logBase))
	if err != nil {
		return nil, err
	}
	candidates := feature.All(d)
	if cfg.features != nil {
		candidates, err = d.Subset(cfg.features...)
		if err != nil {
			return nil, err
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return &Pot{
		domain:     d,
		calc:       calc,
		candidates: candidates,
		maxDepth:   cfg.maxDepth,
		label:      cfg.label,
		logger:     cfg.logger,
	}, nil
}

// Domain returns the domain of the records the pot grows trees for.
func (p *Pot) Domain() *feature.Domain {
	return p.domain
}

/*
Grow takes a table of examples and returns the tree induced from them, or
an error (see Induce).
*/
func (p *Pot) Grow(examples *dataset.Table) (*tree.Tree, error) {
	p.logger.Debug("growing tree",
		zap.Int("examples", examples.Len()),
		zap.Int("features", p.candidates.Len()),
		zap.Stringer("measure", p.calc.Measure()),
		zap.Int("max_depth", p.maxDepth),
	)
	in := &inducer{domain: p.domain, calc: p.calc, logger: p.logger}
	root, err := in.run(examples, p.candidates, p.maxDepth)
	if err != nil {
		return nil, fmt.Errorf("growing tree: %w", err)
	}
	return &tree.Tree{
		Root:     root,
		Label:    p.label,
		Measure:  p.calc.Measure(),
		MaxDepth: p.maxDepth,
	}, nil
}
