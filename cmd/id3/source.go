package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/dataset/csv"
	"github.com/pbanos/id3/dataset/mongodataset"
	"github.com/pbanos/id3/dataset/sqlset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/feature/desc"
	"github.com/pbanos/id3/feature/yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type metadata struct {
	domain      *feature.Domain
	label       string
	labelColumn int
}

/*
loadMetadata reads the domain of the features from a YAML file (.yml or
.yaml) or an attribute description text file (any other extension). The
label name is taken from labelFlag if set, then from the metadata, and
finally from the configuration.
*/
func (rcc *rootCmdConfig) loadMetadata(path, labelFlag string) (*metadata, error) {
	md := &metadata{labelColumn: -1}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		rcc.logger.Debug("reading YAML metadata", zap.String("path", path))
		d, label, err := yaml.ReadDomainFromFile(path)
		if err != nil {
			return nil, err
		}
		md.domain, md.label = d, label
	default:
		rcc.logger.Debug("reading attribute description", zap.String("path", path))
		description, err := desc.ReadFile(path)
		if err != nil {
			return nil, err
		}
		d, err := description.Domain()
		if err != nil {
			return nil, fmt.Errorf("attribute description %s: %w", path, err)
		}
		md.domain, md.label, md.labelColumn = d, description.Label, description.LabelColumn
	}
	if labelFlag != "" {
		md.label = labelFlag
	}
	if md.label == "" {
		md.label = rcc.config.Label
	}
	if md.domain.Lookup(md.label) != nil {
		return nil, fmt.Errorf("label %s cannot also be a feature", md.label)
	}
	rcc.logger.Debug("metadata read",
		zap.Strings("features", md.domain.Names()),
		zap.String("label", md.label),
	)
	return md, nil
}

type sourceFlags struct {
	table      string
	collection string
	header     bool
	maxDBConns int
}

func (sf *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&(sf.table), "table", "examples", "name of the table holding examples on SQLite3 and PostgreSQL databases")
	cmd.Flags().StringVar(&(sf.collection), "collection", mongodataset.DefaultCollection, "name of the collection holding examples on MongoDB databases")
	cmd.Flags().BoolVar(&(sf.header), "header", false, "whether CSV inputs start with a header row to skip")
	cmd.Flags().IntVar(&(sf.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
}

type sourceKind int

const (
	csvSource sourceKind = iota
	sqlSource
	mongoSource
)

func kindOf(source string) sourceKind {
	switch {
	case strings.HasPrefix(source, "mongodb://"):
		return mongoSource
	case sqlset.DriverFor(source) == sqlset.PostgreSQL:
		return sqlSource
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqlSource
	}
	return csvSource
}

/*
load reads the examples at source: a CSV file (STDIN if empty), a SQLite3
file (.db, .sqlite or .sqlite3), a PostgreSQL URL or a MongoDB URL.
*/
func (sf *sourceFlags) load(ctx context.Context, source string, md *metadata, logger *zap.Logger) (*dataset.Table, error) {
	var t *dataset.Table
	var err error
	switch kindOf(source) {
	case mongoSource:
		logger.Debug("reading examples from MongoDB", zap.String("collection", sf.collection))
		session, derr := mongodataset.Dial(ctx, source)
		if derr != nil {
			return nil, derr
		}
		defer session.Close()
		t, err = mongodataset.New(session, sf.collection).Load(ctx, md.domain, md.label)
	case sqlSource:
		logger.Debug("reading examples from database", zap.String("driver", sqlset.DriverFor(source)), zap.String("table", sf.table))
		s, oerr := sqlset.Open(ctx, source, sf.maxDBConns)
		if oerr != nil {
			return nil, oerr
		}
		defer s.Close()
		t, err = s.Load(ctx, sf.table, md.domain, md.label)
	default:
		if source == "" {
			logger.Debug("reading examples from STDIN")
		} else {
			logger.Debug("reading examples from CSV file", zap.String("path", source))
		}
		opts := []csv.Option{csv.WithDomain(md.domain), csv.WithLabelColumn(md.labelColumn)}
		if sf.header {
			opts = append(opts, csv.WithHeader())
		}
		t, err = csv.ReadFile(source, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("reading examples: %w", err)
	}
	logger.Debug("examples read", zap.Int("count", t.Len()))
	return t, nil
}

/*
store writes the examples to destination, which takes the same forms as
the sources load reads (STDOUT if empty). CSV output is written with the
label last.
*/
func (sf *sourceFlags) store(ctx context.Context, destination string, md *metadata, t *dataset.Table, logger *zap.Logger) error {
	switch kindOf(destination) {
	case mongoSource:
		session, err := mongodataset.Dial(ctx, destination)
		if err != nil {
			return err
		}
		defer session.Close()
		n, err := mongodataset.New(session, sf.collection).Write(ctx, md.domain, md.label, t)
		if err != nil {
			return err
		}
		logger.Debug("examples written to MongoDB", zap.String("collection", sf.collection), zap.Int("count", n))
		return nil
	case sqlSource:
		s, err := sqlset.Open(ctx, destination, sf.maxDBConns)
		if err != nil {
			return err
		}
		defer s.Close()
		if err = s.Store(ctx, sf.table, md.domain, md.label, t); err != nil {
			return err
		}
		logger.Debug("examples written to database", zap.String("table", sf.table), zap.Int("count", t.Len()))
		return nil
	}
	var header []string
	if sf.header {
		header = make([]string, md.domain.Width()+1)
		for _, f := range md.domain.Features() {
			header[f.Column()] = f.Name()
		}
		header[len(header)-1] = md.label
	}
	if destination == "" {
		return csv.Write(os.Stdout, t, header)
	}
	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("creating %s: %v", destination, err)
	}
	if err = csv.Write(f, t, header); err != nil {
		f.Close()
		return err
	}
	logger.Debug("examples written to CSV file", zap.String("path", destination), zap.Int("count", t.Len()))
	return f.Close()
}
