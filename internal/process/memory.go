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
	"time"

	"github.com/aqlab/aqingest/internal/frame"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Memory cleans datasets with plain slice operations. It applies the
// same projection and filter as Duck and is used when the embedded
// engine is skipped or fails to start.
type Memory struct {
	opts Options
}

// NewMemory constructs the fallback cleaner.
func NewMemory(opts Options) *Memory {
	return &Memory{opts: opts.withDefaults()}
}

// Name implements the pipeline's Cleaner.
func (m *Memory) Name() string { return "memory" }

// Clean implements the pipeline's Cleaner. The input Frame is
// unchanged.
func (m *Memory) Clean(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	start := time.Now()

	keep, require := m.opts.plan(f)

	filtered := f
	if require != "" {
		idx, _ := f.Column(require)
		filtered = &frame.Frame{Columns: f.Columns}
		for _, row := range f.Rows {
			if row[idx] != nil {
				filtered.Rows = append(filtered.Rows, row)
			}
		}
	}
	out := filtered.Select(keep...)

	if m.opts.ProcessedPath != "" {
		if err := frame.WriteFile(m.opts.ProcessedPath, out); err != nil {
			return nil, errors.Wrap(err, "could not save cleaned dataset")
		}
	}

	observeClean(m.Name(), f.Len(), out.Len(), time.Since(start))
	log.WithFields(log.Fields{
		"engine":  m.Name(),
		"rowsIn":  f.Len(),
		"rowsOut": out.Len(),
	}).Info("dataset cleaned")
	return out, nil
}
