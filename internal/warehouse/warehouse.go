// Copyright 2026 The AQLab Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package warehouse loads cleaned datasets into a PostgreSQL
// warehouse. The destination table is replaced wholesale on every
// run; this keeps repeated runs idempotent at the cost of history.
package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aqlab/aqingest/internal/frame"
	"github.com/aqlab/aqingest/internal/util/retry"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Loader writes Frames into the warehouse. Each Load call owns a
// private pool whose lifetime is scoped to the call.
type Loader struct {
	config *Config
}

// New constructs a Loader. The Config must have been through
// Preflight.
func New(config *Config) *Loader {
	return &Loader{config: config}
}

// Load replaces the configured table with the Frame's rows inside a
// single transaction and returns the number of rows written. A
// reader never sees a half-replaced table. The transaction is
// retried on serialization or connection failures.
func (l *Loader) Load(ctx context.Context, f *frame.Frame) (int64, error) {
	start := time.Now()

	pool, err := l.open(ctx)
	if err != nil {
		return 0, err
	}
	defer pool.Close()

	var copied int64
	err = retry.Retry(ctx, func(ctx context.Context) error {
		tx, err := pool.Begin(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		table := pgx.Identifier{l.config.Table}
		if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+table.Sanitize()); err != nil {
			return errors.Wrapf(err, "could not drop %s", l.config.Table)
		}
		if _, err := tx.Exec(ctx, createTableSQL(l.config.Table, f)); err != nil {
			return errors.Wrapf(err, "could not create %s", l.config.Table)
		}
		copied, err = tx.CopyFrom(ctx, table, f.Columns, pgx.CopyFromRows(f.Rows))
		if err != nil {
			return errors.Wrapf(err, "could not copy rows into %s", l.config.Table)
		}
		return errors.WithStack(tx.Commit(ctx))
	})
	if err != nil {
		return 0, err
	}

	rowCount.Add(float64(copied))
	loadDuration.Observe(time.Since(start).Seconds())
	log.WithFields(log.Fields{
		"rows":  copied,
		"table": l.config.Table,
	}).Info("warehouse table replaced")
	return copied, nil
}

// Ping proves the warehouse accepts connections.
func (l *Loader) Ping(ctx context.Context) error {
	pool, err := l.open(ctx)
	if err != nil {
		return err
	}
	pool.Close()
	return nil
}

// open builds the call-scoped pool and proves the warehouse is
// actually reachable before any DDL runs.
func (l *Loader) open(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(l.config.ConnString)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse warehouse connection string")
	}
	// Identify traffic.
	if _, found := cfg.ConnConfig.RuntimeParams["application_name"]; !found {
		cfg.ConnConfig.RuntimeParams["application_name"] = "aqingest"
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	success := false
	defer func() {
		if !success {
			pool.Close()
		}
	}()

	var version string
	if err := pool.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return nil, errors.Wrap(err, "could not connect to the warehouse")
	}
	log.WithField("version", version).Debug("connected to warehouse")

	success = true
	return pool, nil
}

// createTableSQL renders the replacement table. Numeric columns map
// to DOUBLE PRECISION, everything else to TEXT.
func createTableSQL(table string, f *frame.Frame) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE %s (", pgx.Identifier{table}.Sanitize())
	for i, col := range f.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sqlType := "TEXT"
		if f.ColumnKind(i) == frame.Number {
			sqlType = "DOUBLE PRECISION"
		}
		fmt.Fprintf(&sb, "%s %s", pgx.Identifier{col}.Sanitize(), sqlType)
	}
	sb.WriteString(")")
	return sb.String()
}
