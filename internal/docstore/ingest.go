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

package docstore

import (
	"context"
	"strconv"
	"time"

	"github.com/aqlab/aqingest/internal/frame"
	"github.com/aqlab/aqingest/internal/util/batches"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/weaviate/weaviate/entities/models"
)

// Ingest writes every row of the Frame into the configured
// collection as one document per row. Rows are sent in batches; a
// rejected document does not stop the batch, but any rejection makes
// the whole ingest report an error once all rows have been offered.
func (c *Conn) Ingest(ctx context.Context, f *frame.Frame) error {
	if f.Len() == 0 {
		log.WithField("class", c.config.Class).Debug("no documents to ingest")
		return nil
	}
	start := time.Now()
	var rejected int
	var lastReason string

	err := batches.Batch(c.config.BatchSize, f.Len(), func(begin, end int) error {
		objects := make([]*models.Object, 0, end-begin)
		for _, row := range f.Rows[begin:end] {
			objects = append(objects, &models.Object{
				Class:      c.config.Class,
				Properties: rowProperties(f, row),
			})
		}

		resp, err := c.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
		if err != nil {
			return errors.Wrapf(err, "could not write batch at row %d", begin)
		}
		for _, obj := range resp {
			if obj.Result == nil || obj.Result.Errors == nil {
				continue
			}
			for _, item := range obj.Result.Errors.Error {
				if item == nil {
					continue
				}
				rejected++
				lastReason = item.Message
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	documentCount.Add(float64(f.Len() - rejected))
	rejectedCount.Add(float64(rejected))
	ingestDuration.Observe(time.Since(start).Seconds())

	if rejected > 0 {
		return errors.Errorf("store rejected %d of %d documents (last reason: %s)",
			rejected, f.Len(), lastReason)
	}
	log.WithFields(log.Fields{
		"class":     c.config.Class,
		"documents": f.Len(),
	}).Info("documents ingested")
	return nil
}

// rowProperties projects one row onto the record layout. A text
// attribute whose column is missing from the dataset, or whose cell
// is nil, comes through as the empty string. The value attribute is
// set only when the cell holds a number; it is never sent as a JSON
// null.
func rowProperties(f *frame.Frame, row []any) map[string]interface{} {
	props := make(map[string]interface{}, len(recordLayout))
	for _, p := range recordLayout {
		var cell any
		if idx, ok := f.Column(p.Name); ok {
			cell = row[idx]
		}
		if p.DataType[0] == "number" {
			if v, ok := cell.(float64); ok {
				props[p.Name] = v
			}
			continue
		}
		props[p.Name] = textCell(cell)
	}
	return props
}

// textCell renders a cell the way the CSV codec would, so a numeric
// cell landing in a text attribute keeps its on-disk form.
func textCell(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return ""
	}
}
