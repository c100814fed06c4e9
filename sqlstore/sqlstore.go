// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package sqlstore keeps tables in a relational database reached through
// database/sql. SQLite is the default; the Postgres, MySQL and SQL Server
// drivers are registered as well.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/errors"
	"github.com/featurebasedb/datatable/logger"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

const (
	ErrOpen            errors.Code = "ErrOpen"
	ErrQuery           errors.Code = "ErrQuery"
	ErrTransaction     errors.Code = "ErrTransaction"
	ErrUnsupported     errors.Code = "ErrUnsupported"
	ErrInvalidArgument errors.Code = "ErrInvalidArgument"
)

// DefaultDriver is the database/sql driver name used by OpenTemp.
const DefaultDriver = "sqlite"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Store is a database handle with at most one explicit transaction open at
// a time.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	tx     *sql.Tx
	driver string

	// temp is removed on Close when set.
	temp string

	logger logger.Logger
}

// Open connects to dsn with the named driver and verifies the connection.
func Open(ctx context.Context, driver, dsn string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NopLogger
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.New(ErrOpen, fmt.Sprintf("opening %s database: %v", driver, err))
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.New(ErrOpen, fmt.Sprintf("connecting to %s database: %v", driver, err))
	}
	return &Store{
		db:     db,
		driver: driver,
		logger: log,
	}, nil
}

// OpenTemp creates a SQLite database with a random name under dir. The file
// is deleted when the store is closed.
func OpenTemp(ctx context.Context, dir string, log logger.Logger) (*Store, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "datatable-"+uuid.New().String()+".db")
	s, err := Open(ctx, DefaultDriver, path, log)
	if err != nil {
		return nil, err
	}
	s.temp = path
	s.logger.Debugf("opened temporary database %s", path)
	return s, nil
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Driver returns the database/sql driver name.
func (s *Store) Driver() string { return s.driver }

// Close rolls back any open transaction and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx != nil {
		_ = s.tx.Rollback()
		s.tx = nil
	}
	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, "closing database")
	}
	if s.temp != "" {
		if err := os.Remove(s.temp); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "removing temporary database")
		}
	}
	return nil
}

func (s *Store) conn() querier {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Begin starts an explicit transaction. Statements run through the store
// join it until Commit or Rollback.
func (s *Store) Begin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx != nil {
		return errors.New(ErrTransaction, "transaction already open")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.New(ErrTransaction, fmt.Sprintf("beginning transaction: %v", err))
	}
	s.tx = tx
	return nil
}

func (s *Store) Commit() error {
	return s.endTx(true)
}

func (s *Store) Rollback() error {
	return s.endTx(false)
}

func (s *Store) endTx(commit bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx == nil {
		return errors.New(ErrTransaction, "no transaction open")
	}
	tx := s.tx
	s.tx = nil
	var err error
	if commit {
		err = tx.Commit()
	} else {
		err = tx.Rollback()
	}
	if err != nil {
		return errors.New(ErrTransaction, fmt.Sprintf("ending transaction: %v", err))
	}
	return nil
}

// Exec runs a statement that returns no rows.
func (s *Store) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	res, err := s.conn().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, errors.New(ErrQuery, fmt.Sprintf("executing '%s': %v", query, err))
	}
	return res, nil
}

// BatchExecute runs query once per argument list, in a single transaction
// through one prepared statement. Inside an explicit transaction the batch
// joins it instead.
func (s *Store) BatchExecute(ctx context.Context, query string, batch [][]interface{}) error {
	return s.inTx(ctx, func(q querier) error {
		stmt, err := q.PrepareContext(ctx, query)
		if err != nil {
			return errors.New(ErrQuery, fmt.Sprintf("preparing '%s': %v", query, err))
		}
		defer stmt.Close()
		for i, args := range batch {
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return errors.New(ErrQuery, fmt.Sprintf("executing '%s' (batch item %d): %v", query, i, err))
			}
		}
		return nil
	})
}

// inTx runs fn inside the open explicit transaction, or inside a new one
// that is committed when fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(querier) error) error {
	s.mu.Lock()
	open := s.tx
	s.mu.Unlock()
	if open != nil {
		return fn(open)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.New(ErrTransaction, fmt.Sprintf("beginning transaction: %v", err))
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.New(ErrTransaction, fmt.Sprintf("committing: %v", err))
	}
	return nil
}

// Query runs a query and returns the result set as a table whose columns
// follow the result's column order. NULL becomes the empty string.
func (s *Store) Query(ctx context.Context, query string, args ...interface{}) (*datatable.Table, error) {
	rows, err := s.conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.New(ErrQuery, fmt.Sprintf("querying '%s': %v", query, err))
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "getting result columns")
	}
	cells := make([][]string, len(names))
	vals := make([]sql.NullString, len(names))
	dest := make([]interface{}, len(names))
	for i := range vals {
		dest[i] = &vals[i]
		cells[i] = make([]string, 0)
	}
	n := 0
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scanning row %d", n)
		}
		for i, v := range vals {
			cells[i] = append(cells[i], v.String)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New(ErrQuery, fmt.Sprintf("reading '%s': %v", query, err))
	}

	columns := make(map[string][]string, len(names))
	for i, name := range names {
		if _, ok := columns[name]; ok {
			return nil, datatable.NewErrDuplicateColumn(name)
		}
		columns[name] = cells[i]
	}
	s.logger.Debugf("query returned %d rows", n)
	return datatable.NewTable(columns, names)
}

// AddTable creates table name with one NOT NULL text column per column of
// t and inserts every row of t in one transaction.
func (s *Store) AddTable(ctx context.Context, name string, t *datatable.Table) error {
	headers := t.Headers()
	if len(headers) == 0 {
		return errors.New(ErrInvalidArgument, fmt.Sprintf("table '%s' has no columns", name))
	}
	defs := make([]string, len(headers))
	idents := make([]string, len(headers))
	params := make([]string, len(headers))
	for i, h := range headers {
		idents[i] = s.quote(h)
		defs[i] = idents[i] + " TEXT NOT NULL"
		params[i] = s.placeholder(i + 1)
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", s.quote(name), strings.Join(defs, ", "))
	if _, err := s.Exec(ctx, create); err != nil {
		return errors.Wrapf(err, "creating table '%s'", name)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.quote(name), strings.Join(idents, ", "), strings.Join(params, ", "))
	rows := t.Rows()
	batch := make([][]interface{}, len(rows))
	for i, row := range rows {
		args := make([]interface{}, len(row))
		for j, cell := range row {
			args[j] = cell
		}
		batch[i] = args
	}
	if err := s.BatchExecute(ctx, insert, batch); err != nil {
		return errors.Wrapf(err, "populating table '%s'", name)
	}
	s.logger.Infof("imported %d rows into table %s", len(rows), name)
	return nil
}

// AddCSVTable loads the delimited file at path and stores it as a table
// named after the file without its extension. It returns the table name.
func (s *Store) AddCSVTable(ctx context.Context, path string, opts ...datatable.LoadOption) (string, error) {
	t, err := datatable.Load(path, opts...)
	if err != nil {
		return "", err
	}
	name := TableName(path)
	if err := s.AddTable(ctx, name, t); err != nil {
		return "", err
	}
	return name, nil
}

// TableName derives a table name from a file path.
func TableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteTableToCSV writes the given columns of a stored table to path. An
// empty column list writes every column.
func (s *Store) WriteTableToCSV(ctx context.Context, path, table string, columns []string) error {
	t, err := s.Select(ctx, table, columns, nil)
	if err != nil {
		return err
	}
	return t.Save(path)
}

// Select reads columns of table, keeping the rows whose cells equal every
// value in where. Values are bound, never interpolated.
func (s *Store) Select(ctx context.Context, table string, columns []string, where map[string]string) (*datatable.Table, error) {
	proj := "*"
	if len(columns) > 0 {
		idents := make([]string, len(columns))
		for i, c := range columns {
			idents[i] = s.quote(c)
		}
		proj = strings.Join(idents, ", ")
	}
	query := fmt.Sprintf("SELECT %s FROM %s", proj, s.quote(table))

	var args []interface{}
	if len(where) > 0 {
		// Sorted so the statement text is stable.
		keys := make([]string, 0, len(where))
		for k := range where {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		conds := make([]string, len(keys))
		for i, k := range keys {
			conds[i] = fmt.Sprintf("%s = %s", s.quote(k), s.placeholder(i+1))
			args = append(args, where[k])
		}
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return s.Query(ctx, query, args...)
}

// Tables lists the tables of a SQLite database by name.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	if s.driver != DefaultDriver {
		return nil, errors.New(ErrUnsupported, fmt.Sprintf("listing tables of a %s database is not supported", s.driver))
	}
	t, err := s.Query(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, err
	}
	return t.Column("name")
}

// SaveDatabase copies a SQLite database to outfile.
func (s *Store) SaveDatabase(ctx context.Context, outfile string) error {
	if s.driver != DefaultDriver {
		return errors.New(ErrUnsupported, fmt.Sprintf("saving a %s database is not supported", s.driver))
	}
	if _, err := s.Exec(ctx, "VACUUM INTO ?", outfile); err != nil {
		return errors.Wrapf(err, "saving database to '%s'", outfile)
	}
	return nil
}

// quote quotes an identifier for the store's dialect.
func (s *Store) quote(ident string) string {
	switch s.driver {
	case "mysql":
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	case "sqlserver", "mssql":
		return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// placeholder returns the n-th (1-based) bind parameter for the dialect.
func (s *Store) placeholder(n int) string {
	switch s.driver {
	case "postgres":
		return fmt.Sprintf("$%d", n)
	case "sqlserver", "mssql":
		return fmt.Sprintf("@p%d", n)
	}
	return "?"
}
