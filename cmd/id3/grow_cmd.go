package main

import (
	"fmt"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/impurity"
	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type growCmdConfig struct {
	*rootCmdConfig
	sourceFlags
	dataInput     string
	metadataInput string
	output        string
	label         string
	measure       impurity.Measure
	maxDepth      int
	logBase       float64
	features      []string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree with the ID3 algorithm from a set of examples to predict their label.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			config.applyConfig(cmd)
			md, err := config.loadMetadata(config.metadataInput, config.label)
			if err != nil {
				return err
			}
			trainingSet, err := config.load(cmd.Context(), config.dataInput, md, config.logger)
			if err != nil {
				return err
			}
			opts := []id3.Option{
				id3.WithMeasure(config.measure),
				id3.WithLogBase(config.logBase),
				id3.WithMaxDepth(config.maxDepth),
				id3.WithLabel(md.label),
				id3.WithLogger(config.logger),
			}
			if len(config.features) > 0 {
				opts = append(opts, id3.WithFeatures(config.features...))
			}
			p, err := id3.New(md.domain, opts...)
			if err != nil {
				return err
			}
			config.logger.Info("growing tree",
				zap.Int("examples", trainingSet.Len()),
				zap.Stringer("measure", config.measure),
				zap.Int("max_depth", config.maxDepth),
				zap.String("label", md.label),
			)
			t, err := p.Grow(trainingSet)
			if err != nil {
				return err
			}
			config.logger.Info("tree grown",
				zap.Int("depth", tree.Depth(t.Root)),
				zap.Int("leaves", tree.Leaves(t.Root)),
			)
			config.logger.Debug("grown tree\n" + t.String())
			return config.writeTree(cmd.Context(), config.output, t, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV file, a SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YAML file or an attribute description file describing the features available on the input (required)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format, or \"redis\" to save it on Redis (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(config.label), "label", "l", "", "name of the label the generated tree should predict (defaults to the one in the metadata or the configuration)")
	cmd.Flags().VarP(&(config.measure), "measure", "M", "impurity measure used to choose splits: entropy, gini or majority-error")
	cmd.Flags().IntVarP(&(config.maxDepth), "max-depth", "d", 0, "maximum number of levels of the tree (defaults to 0: no limit)")
	cmd.Flags().Float64Var(&(config.logBase), "log-base", impurity.DefaultLogBase, "base of the logarithm of the entropy measure")
	cmd.Flags().StringSliceVarP(&(config.features), "features", "f", nil, "names of the features the tree may split on (defaults to all of them)")
	config.register(cmd)
	return cmd
}

// applyConfig takes the values of flags not set on the command line from
// the configuration.
func (gcc *growCmdConfig) applyConfig(cmd *cobra.Command) {
	if !cmd.Flags().Changed("measure") {
		gcc.measure = gcc.config.Measure
	}
	if !cmd.Flags().Changed("max-depth") {
		gcc.maxDepth = gcc.config.MaxDepth
	}
	if !cmd.Flags().Changed("log-base") {
		gcc.logBase = gcc.config.EntropyLogBase
	}
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.maxDepth < 0 {
		return fmt.Errorf("max-depth flag was set to an invalid value: it must not be negative")
	}
	return nil
}
