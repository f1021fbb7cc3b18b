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

// Package run contains the command to execute an ingestion run.
package run

import (
	"github.com/aqlab/aqingest/internal/pipeline"
	"github.com/spf13/cobra"
)

// Command returns the command to execute an ingestion run.
func Command() *cobra.Command {
	cfg := &pipeline.Config{}
	cmd := &cobra.Command{
		Args:  cobra.NoArgs,
		Short: "fetch, clean, and load the primary dataset",
		Use:   "run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Preflight(); err != nil {
				return err
			}
			return pipeline.New(cfg).Run(cmd.Context())
		},
	}
	cfg.Bind(cmd.Flags())
	return cmd
}
