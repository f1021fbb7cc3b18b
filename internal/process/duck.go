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

package process

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aqlab/aqingest/internal/frame"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Duck cleans datasets with an embedded in-memory DuckDB database.
// Each Clean call owns a private database whose lifetime is scoped
// to the call.
type Duck struct {
	opts Options
}

// NewDuck constructs the embedded-engine cleaner.
func NewDuck(opts Options) *Duck {
	return &Duck{opts: opts.withDefaults()}
}

// Name implements the pipeline's Cleaner.
func (d *Duck) Name() string { return "duckdb" }

// Clean implements the pipeline's Cleaner. The input Frame is staged
// to a scratch CSV file, projected and filtered inside DuckDB, and
// read back out. The receiver's input is unchanged.
func (d *Duck) Clean(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	start := time.Now()

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "could not start duckdb engine")
	}
	defer func() {
		// A failed shutdown is worth a log line, never a failed run.
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("duckdb engine did not shut down cleanly")
		}
	}()
	// Opening is lazy; prove the engine actually came up.
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "could not start duckdb engine")
	}

	stage, err := os.CreateTemp("", "aqingest-stage-*.csv")
	if err != nil {
		return nil, errors.Wrap(err, "could not stage dataset")
	}
	defer func() { _ = os.Remove(stage.Name()) }()
	if err := frame.Write(stage, f); err != nil {
		_ = stage.Close()
		return nil, errors.Wrap(err, "could not stage dataset")
	}
	if err := stage.Close(); err != nil {
		return nil, errors.Wrap(err, "could not stage dataset")
	}

	keep, require := d.opts.plan(f)
	out, err := d.query(ctx, db, duckQuery(stage.Name(), keep, require))
	if err != nil {
		return nil, err
	}

	if d.opts.ProcessedPath != "" {
		if err := frame.WriteFile(d.opts.ProcessedPath, out); err != nil {
			return nil, errors.Wrap(err, "could not save cleaned dataset")
		}
	}

	observeClean(d.Name(), f.Len(), out.Len(), time.Since(start))
	log.WithFields(log.Fields{
		"engine":  d.Name(),
		"rowsIn":  f.Len(),
		"rowsOut": out.Len(),
	}).Info("dataset cleaned")
	return out, nil
}

func (d *Duck) query(ctx context.Context, db *sql.DB, q string) (*frame.Frame, error) {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "cleaning query failed")
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	out := frame.New(cols...)
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.WithStack(err)
		}
		row := make([]any, len(cols))
		for i, v := range vals {
			row[i] = normalizeCell(v)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, errors.Wrap(rows.Err(), "cleaning query failed")
}

// duckQuery renders the projection over a staged CSV file. DuckDB
// infers per-column types, so a fully numeric value column comes
// back as DOUBLE while text columns stay VARCHAR.
func duckQuery(stage string, keep []string, require string) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	for i, name := range keep {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteIdent(name))
	}
	fmt.Fprintf(&sb, " FROM read_csv_auto('%s', header = true)",
		strings.ReplaceAll(stage, "'", "''"))
	if require != "" {
		fmt.Fprintf(&sb, " WHERE %s IS NOT NULL", quoteIdent(require))
	}
	return sb.String()
}

// normalizeCell maps driver values onto the Frame cell types.
func normalizeCell(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		return v
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case int16:
		return float64(v)
	case int8:
		return float64(v)
	case int:
		return float64(v)
	case uint64:
		return float64(v)
	case uint32:
		return float64(v)
	case bool:
		return strconv.FormatBool(v)
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case *big.Int:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
