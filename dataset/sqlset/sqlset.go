/*
Package sqlset loads example tables from SQL databases and stores them
there. SQLite3 files and PostgreSQL databases are supported.

Examples live on a table with a TEXT column per feature, named after it,
and a TEXT column for the label.
*/
package sqlset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of postgres driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

const (
	// SQLite3 is the driver name for SQLite3 databases.
	SQLite3 = "sqlite3"
	// PostgreSQL is the driver name for PostgreSQL databases.
	PostgreSQL = "postgres"
)

/*
Set gives access to example tables stored on a SQL database.
*/
type Set struct {
	db     *sql.DB
	driver string
}

/*
DriverFor takes a data source and returns the name of the driver to open
it with: PostgreSQL for postgres:// and postgresql:// URLs, SQLite3
otherwise.
*/
func DriverFor(source string) string {
	if strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://") {
		return PostgreSQL
	}
	return SQLite3
}

/*
Open takes a context, a data source (a PostgreSQL URL or a path to an
SQLite3 file) and a limit to open connections (0 for no limit) and returns
a Set on the database, or an error if it cannot be reached.
*/
func Open(ctx context.Context, source string, maxConns int) (*Set, error) {
	driver := DriverFor(source)
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %v", driver, err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s database: %v", driver, err)
	}
	return &Set{db: db, driver: driver}, nil
}

// New returns a Set on an already open database for the given driver.
func New(db *sql.DB, driver string) *Set {
	return &Set{db: db, driver: driver}
}

// Close closes the underlying database.
func (s *Set) Close() error {
	return s.db.Close()
}

/*
Load takes a context, the name of a database table, a domain and the name
of the label column, and returns the examples on the table. Rows are read
ordered by the feature columns and then the label, so that loading the
same table always yields the same table of examples. NULL values and
records outside the domain produce an error.
*/
func (s *Set) Load(ctx context.Context, table string, d *feature.Domain, label string) (*dataset.Table, error) {
	columns, err := quotedColumns(d, label)
	if err != nil {
		return nil, err
	}
	qTable, err := quote(table)
	if err != nil {
		return nil, err
	}
	cl := strings.Join(columns, ", ")
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", cl, qTable, cl)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying examples on %s: %v", table, err)
	}
	defer rows.Close()
	t := dataset.New()
	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for n := 1; rows.Next(); n++ {
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning example %d on %s: %v", n, table, err)
		}
		for i, v := range values {
			if !v.Valid {
				return nil, fmt.Errorf("example %d on %s has a NULL value on column %s", n, table, columns[i])
			}
		}
		record := make([]string, d.Width())
		for i, f := range d.Features() {
			record[f.Column()] = values[i].String
		}
		if err = d.Validate(record); err != nil {
			return nil, fmt.Errorf("example %d on %s: %w", n, table, err)
		}
		if err = t.Add(record, values[len(values)-1].String); err != nil {
			return nil, fmt.Errorf("example %d on %s: %w", n, table, err)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("reading examples on %s: %v", table, err)
	}
	return t, nil
}

/*
Store takes a context, the name of a database table, a domain, the name of
the label column and a table of examples, creates the database table if it
does not exist and inserts the examples into it in a single transaction.
*/
func (s *Set) Store(ctx context.Context, table string, d *feature.Domain, label string, t *dataset.Table) (err error) {
	columns, err := quotedColumns(d, label)
	if err != nil {
		return err
	}
	qTable, err := quote(table)
	if err != nil {
		return err
	}
	defs := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = c + " TEXT NOT NULL"
		placeholders[i] = s.placeholder(i + 1)
	}
	createStmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", qTable, strings.Join(defs, ", "))
	if _, err = s.db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("creating table %s: %v", table, err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %v", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	insertStmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", qTable, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %v", err)
	}
	defer stmt.Close()
	for i, e := range t.Examples() {
		if err = d.Validate(e.Record); err != nil {
			return fmt.Errorf("example %d: %w", i+1, err)
		}
		args := make([]interface{}, 0, len(columns))
		for _, f := range d.Features() {
			args = append(args, e.Record[f.Column()])
		}
		args = append(args, e.Label)
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting example %d: %v", i+1, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing examples: %v", err)
	}
	return nil
}

func (s *Set) placeholder(i int) string {
	if s.driver == PostgreSQL {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func quotedColumns(d *feature.Domain, label string) ([]string, error) {
	columns := make([]string, 0, d.Len()+1)
	for _, name := range append(d.Names(), label) {
		c, err := quote(name)
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return columns, nil
}

func quote(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty name cannot be used as SQL identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return `"` + name + `"`, nil
}
