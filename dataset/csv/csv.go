/*
Package csv reads example tables from CSV streams and writes them back.

Each row holds the values of a record's features followed by its label,
unless another position is set for the label column.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

type config struct {
	header      bool
	labelColumn int
	domain      *feature.Domain
}

// Option configures how CSV content is read.
type Option func(*config)

// WithHeader indicates the first row holds column names and must be
// skipped.
func WithHeader() Option {
	return func(c *config) {
		c.header = true
	}
}

// WithLabelColumn sets the zero-based position of the label on rows.
// Negative positions count from the end: -1, the default, is the last
// column.
func WithLabelColumn(i int) Option {
	return func(c *config) {
		c.labelColumn = i
	}
}

// WithDomain makes records be validated against the given domain as they
// are read.
func WithDomain(d *feature.Domain) Option {
	return func(c *config) {
		c.domain = d
	}
}

/*
Read takes an io.Reader for a CSV stream and options and returns the table
of examples parsed from it or an error. Rows must all have the same number
of values. Rows repeating a record with a different label produce an
error wrapping dataset.ErrConflictingLabel; exact repetitions are ignored.
*/
func Read(reader io.Reader, opts ...Option) (*dataset.Table, error) {
	cfg := &config{labelColumn: -1}
	for _, opt := range opts {
		opt(cfg)
	}
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	if cfg.header {
		if _, err := r.Read(); err != nil {
			return nil, fmt.Errorf("reading header: %v", err)
		}
	}
	t := dataset.New()
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		line, _ := r.FieldPos(0)
		record, label, err := splitRow(row, cfg.labelColumn)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %v", line, err)
		}
		if cfg.domain != nil {
			if err = cfg.domain.Validate(record); err != nil {
				return nil, fmt.Errorf("parsing line %d: %w", line, err)
			}
		}
		if err = t.Add(record, label); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", line, err)
		}
	}
	return t, nil
}

/*
ReadRecords takes an io.Reader for a CSV stream of unlabeled records, a
domain and options and returns the records, each validated against the
domain. Only the WithHeader option applies.
*/
func ReadRecords(reader io.Reader, d *feature.Domain, opts ...Option) ([][]string, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = d.Width()
	if cfg.header {
		if _, err := r.Read(); err != nil {
			return nil, fmt.Errorf("reading header: %v", err)
		}
	}
	var records [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		if err = d.Validate(row); err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("parsing line %d: %w", line, err)
		}
		records = append(records, row)
	}
	return records, nil
}

/*
ReadFile takes a filepath string and options, opens the file it points to
and uses Read to return the table in it. If the filepath is empty, the
table is read from os.Stdin.
*/
func ReadFile(filepath string, opts ...Option) (*dataset.Table, error) {
	f := os.Stdin
	if filepath != "" {
		var err error
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("opening CSV file %s: %v", filepath, err)
		}
		defer f.Close()
	}
	t, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return t, nil
}

/*
Write takes a writer, a table and an optional header and dumps the table
onto the writer in CSV format, a row per example with the label last.
*/
func Write(writer io.Writer, t *dataset.Table, header []string) error {
	w := csv.NewWriter(writer)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing CSV header: %v", err)
		}
	}
	for i, e := range t.Examples() {
		row := make([]string, 0, len(e.Record)+1)
		row = append(row, e.Record...)
		row = append(row, e.Label)
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for example %d: %v", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

func splitRow(row []string, labelColumn int) ([]string, string, error) {
	if labelColumn < 0 {
		labelColumn += len(row)
	}
	if labelColumn < 0 || labelColumn >= len(row) {
		return nil, "", fmt.Errorf("no label column in row of %d values", len(row))
	}
	record := make([]string, 0, len(row)-1)
	record = append(record, row[:labelColumn]...)
	record = append(record, row[labelColumn+1:]...)
	return record, row[labelColumn], nil
}
