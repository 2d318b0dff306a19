package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type testCmdConfig struct {
	*rootCmdConfig
	sourceFlags
	treeInput     string
	dataInput     string
	metadataInput string
	label         string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set, printing the fraction of examples it mislabels`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			md, err := config.loadMetadata(config.metadataInput, config.label)
			if err != nil {
				return err
			}
			t, err := config.loadTree(cmd.Context(), config.treeInput, md.domain)
			if err != nil {
				return err
			}
			testingSet, err := config.load(cmd.Context(), config.dataInput, md, config.logger)
			if err != nil {
				return err
			}
			config.logger.Info("testing tree", zap.Int("examples", testingSet.Len()))
			errorRate, err := t.Test(testingSet, md.domain.Columns())
			if err != nil {
				return fmt.Errorf("testing tree: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%f error rate over %d examples\n", errorRate, testingSet.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV file, a SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to test the tree against (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YAML file or an attribute description file describing the features available on the input (required)")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON, or redis:ID for a tree saved on Redis (required)")
	cmd.Flags().StringVarP(&(config.label), "label", "l", "", "name of the label the tree predicts (defaults to the one in the metadata or the configuration)")
	config.register(cmd)
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}
