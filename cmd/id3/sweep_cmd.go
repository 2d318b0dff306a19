package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/impurity"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type sweepCmdConfig struct {
	*rootCmdConfig
	sourceFlags
	trainingInput string
	testingInput  string
	metadataInput string
	label         string
	measures      []string
	maxDepth      int
	workers       int
}

// sweepResult holds the error rates of a tree grown with a measure and a
// depth limit.
type sweepResult struct {
	Measure       impurity.Measure
	MaxDepth      int
	TrainingError float64
	TestingError  float64
}

func sweepCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &sweepCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare trees grown with every measure and depth limit",
		Long: `Grow a tree for every impurity measure and every depth limit from 1 to max-depth,
and print the error rate of each of them on the training and testing sets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			measures, err := config.parseMeasures()
			if err != nil {
				return err
			}
			md, err := config.loadMetadata(config.metadataInput, config.label)
			if err != nil {
				return err
			}
			trainingSet, err := config.load(cmd.Context(), config.trainingInput, md, config.logger)
			if err != nil {
				return fmt.Errorf("training set: %w", err)
			}
			testingSet, err := config.load(cmd.Context(), config.testingInput, md, config.logger)
			if err != nil {
				return fmt.Errorf("testing set: %w", err)
			}
			results, err := sweep(cmd.Context(), md.domain, trainingSet, testingSet, measures, config.maxDepth, config.workers, config.config.EntropyLogBase, config.logger)
			if err != nil {
				return err
			}
			return writeSweepResults(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVarP(&(config.trainingInput), "training", "i", "", "path to a CSV file, a SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the training set (required)")
	cmd.Flags().StringVarP(&(config.testingInput), "testing", "e", "", "path to a CSV file, a SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the testing set (required)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YAML file or an attribute description file describing the features available on the sets (required)")
	cmd.Flags().StringVarP(&(config.label), "label", "l", "", "name of the label the trees should predict (defaults to the one in the metadata or the configuration)")
	cmd.Flags().StringSliceVar(&(config.measures), "measures", []string{"entropy", "majority-error", "gini"}, "impurity measures to grow trees with")
	cmd.Flags().IntVarP(&(config.maxDepth), "max-depth", "d", 6, "largest depth limit to grow trees with")
	cmd.Flags().IntVarP(&(config.workers), "workers", "w", runtime.NumCPU(), "number of trees grown at a time")
	config.register(cmd)
	return cmd
}

func (scc *sweepCmdConfig) Validate() error {
	if scc.trainingInput == "" {
		return fmt.Errorf("required training flag was not set")
	}
	if scc.testingInput == "" {
		return fmt.Errorf("required testing flag was not set")
	}
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.maxDepth < 1 {
		return fmt.Errorf("max-depth flag was set to an invalid value: it must be a positive integer")
	}
	if scc.workers < 1 {
		return fmt.Errorf("workers flag was set to an invalid value: it must be a positive integer")
	}
	return nil
}

func (scc *sweepCmdConfig) parseMeasures() ([]impurity.Measure, error) {
	if len(scc.measures) == 0 {
		return nil, fmt.Errorf("measures flag was set to an empty list")
	}
	measures := make([]impurity.Measure, 0, len(scc.measures))
	for _, name := range scc.measures {
		m, err := impurity.ParseMeasure(name)
		if err != nil {
			return nil, err
		}
		measures = append(measures, m)
	}
	return measures, nil
}

/*
sweep grows a tree for every measure and depth limit from 1 to maxDepth on
the training set and evaluates it on both sets. Up to workers trees are
grown at a time, each of them on a single goroutine. Results are returned
ordered by measure and then depth limit.
*/
func sweep(ctx context.Context, d *feature.Domain, trainingSet, testingSet *dataset.Table, measures []impurity.Measure, maxDepth, workers int, logBase float64, logger *zap.Logger) ([]sweepResult, error) {
	results := make([]sweepResult, len(measures)*maxDepth)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range measures {
		for depth := 1; depth <= maxDepth; depth++ {
			m, depth := m, depth
			slot := &results[i*maxDepth+depth-1]
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				p, err := id3.New(d, id3.WithMeasure(m), id3.WithMaxDepth(depth), id3.WithLogBase(logBase), id3.WithLogger(logger))
				if err != nil {
					return err
				}
				t, err := p.Grow(trainingSet)
				if err != nil {
					return fmt.Errorf("%v tree with max depth %d: %w", m, depth, err)
				}
				trainingError, err := t.Test(trainingSet, d.Columns())
				if err != nil {
					return fmt.Errorf("%v tree with max depth %d: training set: %w", m, depth, err)
				}
				testingError, err := t.Test(testingSet, d.Columns())
				if err != nil {
					return fmt.Errorf("%v tree with max depth %d: testing set: %w", m, depth, err)
				}
				logger.Debug("tree evaluated",
					zap.Stringer("measure", m),
					zap.Int("max_depth", depth),
					zap.Float64("training_error", trainingError),
					zap.Float64("testing_error", testingError),
				)
				*slot = sweepResult{Measure: m, MaxDepth: depth, TrainingError: trainingError, TestingError: testingError}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeSweepResults(w io.Writer, results []sweepResult) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "MEASURE\tMAX DEPTH\tTRAINING ERROR\tTESTING ERROR")
	for _, r := range results {
		fmt.Fprintf(tw, "%v\t%d\t%.4f\t%.4f\n", r.Measure, r.MaxDepth, r.TrainingError, r.TestingError)
	}
	return tw.Flush()
}
