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

// Package process cleans a raw dataset into its analytic form.
//
// Two interchangeable engines are provided. Duck runs the projection
// inside an embedded DuckDB database, which is the production path
// for datasets that deserve a real columnar engine. Memory applies
// the same projection with plain slice operations and exists so that
// a run can still complete when the embedded engine cannot start.
package process

import (
	"strings"

	"github.com/aqlab/aqingest/internal/frame"
	log "github.com/sirupsen/logrus"
)

// DefaultColumns is the analytic subset of the air-quality dataset.
// Source columns outside this list are dropped.
var DefaultColumns = []string{"location", "city", "country", "parameter", "value", "unit"}

// DefaultRequire is the column that must be populated for a row to
// survive cleaning.
const DefaultRequire = "value"

// Options configures a cleaning engine. The zero value selects the
// air-quality defaults.
type Options struct {
	// Select lists the columns to keep, in output order. Names not
	// present in the source dataset are ignored.
	Select []string
	// Require names the column whose empty rows are dropped. The
	// filter is skipped when the source has no such column.
	Require string
	// ProcessedPath, when set, is where Clean writes the cleaned
	// dataset. Parent directories are created as needed.
	ProcessedPath string
}

func (o Options) withDefaults() Options {
	if o.Select == nil {
		o.Select = DefaultColumns
	}
	if o.Require == "" {
		o.Require = DefaultRequire
	}
	return o
}

// plan resolves Options against an actual header: the surviving
// column list and whether the required-value filter applies. A
// dataset that shares no columns with the selection passes through
// whole rather than failing the run.
func (o Options) plan(f *frame.Frame) (keep []string, require string) {
	for _, name := range o.Select {
		if _, ok := f.Column(name); ok {
			keep = append(keep, name)
		}
	}
	if len(keep) == 0 {
		log.WithField("columns", f.Columns).Warn(
			"no analytic columns present in dataset, keeping all")
		keep = append(keep, f.Columns...)
	}
	if _, ok := f.Column(o.Require); ok {
		require = o.Require
	} else {
		log.WithField("column", o.Require).Warn(
			"filter column absent, keeping all rows")
	}
	return keep, require
}

// quoteIdent quotes a column name for use in engine SQL.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
