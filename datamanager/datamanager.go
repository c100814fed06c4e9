// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package datamanager opens data files behind a single Dataset interface,
// keeping small files in memory and importing large ones into a database.
package datamanager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/config"
	"github.com/featurebasedb/datatable/errors"
	"github.com/featurebasedb/datatable/logger"
	"github.com/featurebasedb/datatable/sqlstore"
	"golang.org/x/exp/slices"
)

// Backend names where a Dataset keeps its rows.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendSQL    Backend = "sql"
)

// DefaultThreshold is the largest file, in bytes, kept in memory.
const DefaultThreshold int64 = 64 << 20

// Dataset is a named source of rows.
type Dataset interface {
	Name() string
	Backend() Backend

	// Select returns the given columns, all of them when columns is empty,
	// of the rows whose cells equal every value in where.
	Select(ctx context.Context, columns []string, where map[string]string) (*datatable.Table, error)

	Close() error
}

// Manager opens datasets and owns them until Close.
type Manager struct {
	mu       sync.Mutex
	datasets map[string]Dataset
	conf     *config.Config

	// Threshold is the largest file size, in bytes, loaded into memory.
	// Larger files are imported into a temporary SQLite database.
	Threshold int64

	// TempDir holds temporary databases. Empty means os.TempDir().
	TempDir string

	LoadOptions []datatable.LoadOption

	Logger logger.Logger
}

// NewManager returns a Manager with the given size threshold.
func NewManager(threshold int64, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NopLogger
	}
	return &Manager{
		datasets:  make(map[string]Dataset),
		Threshold: threshold,
		Logger:    log,
	}
}

// LoadConfig reads an INI file and makes it available through Config.
func (m *Manager) LoadConfig(path string) error {
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.conf = c
	m.mu.Unlock()
	return nil
}

// Config returns the loaded configuration, or nil.
func (m *Manager) Config() *config.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conf
}

// DatabaseExt marks a file as an existing SQLite database rather than
// delimited text.
const DatabaseExt = ".db"

// Open opens the file at path as a dataset named after the file; opening a
// name that is already open returns the existing dataset. A file with the
// .db extension is attached as a SQLite database holding exactly one
// table; see OpenDatabase for databases with several. Any other file is
// loaded as delimited text.
func (m *Manager) Open(ctx context.Context, path string) (Dataset, error) {
	name := sqlstore.TableName(path)
	if strings.EqualFold(filepath.Ext(path), DatabaseExt) {
		return m.open(name, path, func(size int64) (Dataset, error) {
			return m.openDatabase(ctx, name, path, "")
		})
	}
	return m.open(name, path, func(size int64) (Dataset, error) {
		if size <= m.Threshold {
			return m.openMemory(name, path)
		}
		return m.openSQL(ctx, name, path)
	})
}

// OpenDatabase attaches one table of the SQLite database at path. The
// dataset is named "<file>.<table>".
func (m *Manager) OpenDatabase(ctx context.Context, path, table string) (Dataset, error) {
	if table == "" {
		return nil, errors.New(sqlstore.ErrInvalidArgument, "table name required")
	}
	name := sqlstore.TableName(path) + "." + table
	return m.open(name, path, func(size int64) (Dataset, error) {
		return m.openDatabase(ctx, name, path, table)
	})
}

// open registers the dataset built by fn under name unless one is already
// open.
func (m *Manager) open(name, path string, fn func(size int64) (Dataset, error)) (Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.datasets == nil {
		m.datasets = make(map[string]Dataset)
	}
	if ds, ok := m.datasets[name]; ok {
		return ds, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, datatable.NewErrFileNotFound(path)
		}
		return nil, datatable.NewErrIO(path, err)
	}

	ds, err := fn(info.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "opening dataset '%s'", name)
	}
	m.logger().Infof("opened dataset %s (%d bytes) with %s backend", name, info.Size(), ds.Backend())
	CounterDatasetsOpened.WithLabelValues(string(ds.Backend())).Inc()
	m.datasets[name] = ds
	return ds, nil
}

// openDatabase attaches table of an existing database. An empty table
// picks the only table the database holds.
func (m *Manager) openDatabase(ctx context.Context, name, path, table string) (Dataset, error) {
	store, err := sqlstore.Open(ctx, sqlstore.DefaultDriver, path, m.logger().WithPrefix(name+": "))
	if err != nil {
		return nil, err
	}
	tables, err := store.Tables(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	switch {
	case table == "" && len(tables) == 1:
		table = tables[0]
	case table == "":
		store.Close()
		return nil, errors.New(sqlstore.ErrInvalidArgument,
			fmt.Sprintf("'%s' holds %d tables [%s], name one with OpenDatabase", path, len(tables), strings.Join(tables, ", ")))
	case !slices.Contains(tables, table):
		store.Close()
		return nil, errors.New(sqlstore.ErrInvalidArgument,
			fmt.Sprintf("no table '%s' in '%s', tables are [%s]", table, path, strings.Join(tables, ", ")))
	}
	return &sqlDataset{name: name, store: store, table: table}, nil
}

func (m *Manager) openMemory(name, path string) (Dataset, error) {
	t, err := datatable.Load(path, m.LoadOptions...)
	if err != nil {
		return nil, err
	}
	return &memoryDataset{name: name, table: t}, nil
}

func (m *Manager) openSQL(ctx context.Context, name, path string) (Dataset, error) {
	store, err := sqlstore.OpenTemp(ctx, m.TempDir, m.logger().WithPrefix(name+": "))
	if err != nil {
		return nil, err
	}
	table, err := store.AddCSVTable(ctx, path, m.LoadOptions...)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &sqlDataset{name: name, store: store, table: table}, nil
}

func (m *Manager) logger() logger.Logger {
	if m.Logger == nil {
		return logger.NopLogger
	}
	return m.Logger
}

// Dataset returns an open dataset by name.
func (m *Manager) Dataset(name string) (Dataset, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.datasets[name]
	return ds, ok
}

// Close closes every open dataset. It returns the first error.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var first error
	for name, ds := range m.datasets {
		if err := ds.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "closing dataset '%s'", name)
		}
		delete(m.datasets, name)
	}
	return first
}

// observe records the metrics for one Select.
func observe(b Backend, start time.Time, t *datatable.Table) {
	HistogramSelectDuration.WithLabelValues(string(b)).Observe(time.Since(start).Seconds())
	if t != nil {
		CounterRowsSelected.WithLabelValues(string(b)).Add(float64(t.NRows()))
	}
}

type memoryDataset struct {
	name  string
	table *datatable.Table
}

func (d *memoryDataset) Name() string     { return d.name }
func (d *memoryDataset) Backend() Backend { return BackendMemory }
func (d *memoryDataset) Close() error     { return nil }

func (d *memoryDataset) Select(ctx context.Context, columns []string, where map[string]string) (t *datatable.Table, err error) {
	defer func(start time.Time) { observe(BackendMemory, start, t) }(time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err = d.table.SelectWhere(where)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return t, nil
	}
	return t.SelectColumns(columns)
}

type sqlDataset struct {
	name  string
	table string
	store *sqlstore.Store
}

func (d *sqlDataset) Name() string     { return d.name }
func (d *sqlDataset) Backend() Backend { return BackendSQL }
func (d *sqlDataset) Close() error     { return d.store.Close() }

func (d *sqlDataset) Select(ctx context.Context, columns []string, where map[string]string) (t *datatable.Table, err error) {
	defer func(start time.Time) { observe(BackendSQL, start, t) }(time.Now())
	return d.store.Select(ctx, d.table, columns, where)
}
