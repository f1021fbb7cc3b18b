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

// Package preflight contains a command to assist with testing
// destination connections.
package preflight

import (
	"github.com/aqlab/aqingest/internal/docstore"
	"github.com/aqlab/aqingest/internal/pipeline"
	"github.com/aqlab/aqingest/internal/warehouse"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Command returns a command to test the configured destinations. It
// accepts the same flags as an ingestion run, so an existing command
// line can be replayed against it.
func Command() *cobra.Command {
	cfg := &pipeline.Config{}
	cmd := &cobra.Command{
		Args:  cobra.NoArgs,
		Short: "test connections to the configured destinations",
		Use:   "preflight",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Preflight(); err != nil {
				return err
			}
			ctx := cmd.Context()

			if cfg.SkipDocstore && cfg.SkipWarehouse {
				log.Info("all destinations skipped, no connections to test")
				return nil
			}
			if !cfg.SkipDocstore {
				log.WithField("url", cfg.Docstore.URL).Info("testing document store")
				if err := docstore.NewStore(&cfg.Docstore).Ping(ctx); err != nil {
					return errors.Wrap(err, "document store")
				}
			}
			if !cfg.SkipWarehouse {
				log.WithField("conn", cfg.Warehouse.ConnString).Info("testing warehouse")
				if err := warehouse.New(&cfg.Warehouse).Ping(ctx); err != nil {
					return errors.Wrap(err, "warehouse")
				}
			}
			log.Info("all destinations reachable")
			return nil
		},
	}
	cfg.Bind(cmd.Flags())
	return cmd
}
