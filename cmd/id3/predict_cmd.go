package main

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/id3/dataset/csv"
	"github.com/pbanos/id3/dataset/inputsample"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
	recordsInput  string
	header        bool
}

type writerFeatureValueRequester struct {
	w io.Writer
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict labels for records",
		Long: `Use the loaded tree to predict the label of the records in a CSV file, or of a record described
by answering a reduced set of questions about its features when no file is given`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			md, err := config.loadMetadata(config.metadataInput, "")
			if err != nil {
				return err
			}
			t, err := config.loadTree(cmd.Context(), config.treeInput, md.domain)
			if err != nil {
				return err
			}
			if config.recordsInput == "" {
				return predictInteractively(t, md.domain, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return config.predictRecords(t, md.domain, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YAML file or an attribute description file describing the features the tree tests (required)")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON, or redis:ID for a tree saved on Redis (required)")
	cmd.Flags().StringVarP(&(config.recordsInput), "input", "i", "", "path to a CSV file with unlabeled records to predict labels for, each row followed by its prediction on the output (defaults to asking for feature values on STDIN)")
	cmd.Flags().BoolVar(&(config.header), "header", false, "whether the CSV input starts with a header row to skip")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func (pcc *predictCmdConfig) predictRecords(t *tree.Tree, d *feature.Domain, out io.Writer) error {
	f, err := os.Open(pcc.recordsInput)
	if err != nil {
		return fmt.Errorf("opening records at %s: %v", pcc.recordsInput, err)
	}
	defer f.Close()
	var opts []csv.Option
	if pcc.header {
		opts = append(opts, csv.WithHeader())
	}
	records, err := csv.ReadRecords(f, d, opts...)
	if err != nil {
		return fmt.Errorf("reading records from %s: %w", pcc.recordsInput, err)
	}
	w := stdcsv.NewWriter(out)
	for i, record := range records {
		label, err := t.Predict(record, d.Columns())
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if err = w.Write(append(record, label)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func predictInteractively(t *tree.Tree, d *feature.Domain, in io.Reader, out io.Writer) error {
	sample := inputsample.New(in, d, writerFeatureValueRequester{out})
	label, err := tree.PredictSample(t.Root, sample)
	if err != nil {
		return err
	}
	name := t.Label
	if name == "" {
		name = "label"
	}
	_, err = fmt.Fprintf(out, "Predicted %s is %s\n", name, label)
	return err
}

func (r writerFeatureValueRequester) RequestValueFor(f *feature.Feature) error {
	_, err := fmt.Fprintf(r.w, "Please provide the sample's %s:\n(valid values are %v)\n", f.Name(), f.AvailableValues())
	return err
}

func (r writerFeatureValueRequester) RejectValueFor(f *feature.Feature, value string) error {
	_, err := fmt.Fprintf(r.w, "%q is not a valid value for the sample's %s. Please provide one of %v.\n", value, f.Name(), f.AvailableValues())
	return err
}
