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

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/weaviate/weaviate/entities/models"
)

// recordLayout is the fixed property set of the collection. Documents
// are projected onto it regardless of the dataset's shape; dataset
// columns outside the layout are never sent.
var recordLayout = []*models.Property{
	{Name: "location", DataType: []string{"text"}},
	{Name: "city", DataType: []string{"text"}},
	{Name: "country", DataType: []string{"text"}},
	{Name: "parameter", DataType: []string{"text"}},
	{Name: "value", DataType: []string{"number"}},
	{Name: "unit", DataType: []string{"text"}},
}

// EnsureSchema creates the configured collection with the record
// layout if the store does not already have one by that name. An
// existing collection is left exactly as found, whatever its
// properties; second and later runs rely on this being a no-op.
func (c *Conn) EnsureSchema(ctx context.Context) error {
	schema, err := c.client.Schema().Getter().Do(ctx)
	if err != nil {
		return errors.Wrap(err, "could not read document store schema")
	}
	for _, class := range schema.Classes {
		if class != nil && class.Class == c.config.Class {
			log.WithField("class", c.config.Class).Debug("document collection already exists")
			return nil
		}
	}

	class := &models.Class{
		Class:      c.config.Class,
		Properties: recordLayout,
	}
	if err := c.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return errors.Wrapf(err, "could not create collection %s", c.config.Class)
	}
	log.WithField("class", c.config.Class).Info("created document collection")
	return nil
}
