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

// Package fetch contains a command to download a secondary dataset
// without loading any destination.
package fetch

import (
	"net/http"
	"time"

	"github.com/aqlab/aqingest/internal/fetch"
	"github.com/aqlab/aqingest/internal/frame"
	"github.com/aqlab/aqingest/internal/util/envflag"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	defaultURL = "https://people.sc.fsu.edu/~jburkardt/data/csv/airtravel.csv"

	defaultProcessedPath = "data/processed/secondary_clean.csv"
	defaultRawPath       = "data/raw/secondary.csv"
)

// Command returns a command to download an auxiliary dataset, drop
// its entirely-empty rows, and write the result as a local CSV.
func Command() *cobra.Command {
	var fetchTimeout time.Duration
	var processedPath, rawPath, url string
	cmd := &cobra.Command{
		Args:  cobra.NoArgs,
		Short: "download and tidy a secondary dataset",
		Use:   "fetch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				return errors.New("no dataset URL specified")
			}
			ctx := cmd.Context()

			client := &http.Client{Timeout: fetchTimeout}
			if _, err := fetch.Fetch(ctx, client, url, rawPath); err != nil {
				return err
			}
			raw, err := frame.ReadFile(rawPath)
			if err != nil {
				return err
			}
			tidy := raw.DropEmptyRows()
			if err := frame.WriteFile(processedPath, tidy); err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"dropped": raw.Len() - tidy.Len(),
				"path":    processedPath,
				"rows":    tidy.Len(),
			}).Info("secondary dataset ready")
			return nil
		},
	}

	f := cmd.Flags()
	f.DurationVar(&fetchTimeout, "fetchTimeout", time.Minute,
		"overall time budget for downloading the dataset")
	f.StringVar(&processedPath, "processedPath", defaultProcessedPath,
		"where to write the tidied dataset")
	f.StringVar(&rawPath, "rawPath", defaultRawPath,
		"where to write the raw download")
	f.StringVar(&url, "url", envflag.Or("SECONDARY_DATA_URL", defaultURL),
		"the HTTP URL of the secondary dataset")
	return cmd
}
