package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pbanos/id3/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type splitCmdConfig struct {
	*rootCmdConfig
	sourceFlags
	setInput         string
	metadataInput    string
	setOutput        string
	splitOutput      string
	label            string
	splitProbability int
	seed             int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, such as a training set and a testing set`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			md, err := config.loadMetadata(config.metadataInput, config.label)
			if err != nil {
				return err
			}
			input, err := config.load(cmd.Context(), config.setInput, md, config.logger)
			if err != nil {
				return err
			}
			seed := config.seed
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			output, split, err := splitTable(input, config.splitProbability, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			if err = config.store(cmd.Context(), config.setOutput, md, output, config.logger); err != nil {
				return fmt.Errorf("writing output set: %w", err)
			}
			if err = config.store(cmd.Context(), config.splitOutput, md, split, config.logger); err != nil {
				return fmt.Errorf("writing split set: %w", err)
			}
			config.logger.Info("set split",
				zap.Int("examples", input.Len()),
				zap.Int("output", output.Len()),
				zap.Int("split", split.Len()),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV file, a SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the set to split (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YAML file or an attribute description file describing the features available on the input (required)")
	cmd.Flags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV file, a SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the output set to (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a CSV file, a SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the split set to (required)")
	cmd.Flags().StringVarP(&(config.label), "label", "l", "", "name of the label of the examples (defaults to the one in the metadata or the configuration)")
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that an example of the set will be assigned to the split set")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed of the random assignment of examples (defaults to the current time)")
	config.register(cmd)
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}

// splitTable assigns every example of the table to the split table with
// the given percent probability, and to the output table otherwise.
func splitTable(t *dataset.Table, probability int, randomizer *rand.Rand) (*dataset.Table, *dataset.Table, error) {
	output, split := dataset.New(), dataset.New()
	for _, e := range t.Examples() {
		target := output
		if 100*randomizer.Float32() < float32(probability) {
			target = split
		}
		if err := target.Add(e.Record, e.Label); err != nil {
			return nil, nil, err
		}
	}
	return output, split, nil
}
