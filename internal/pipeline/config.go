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

package pipeline

import (
	"net/url"
	"time"

	"github.com/aqlab/aqingest/internal/docstore"
	"github.com/aqlab/aqingest/internal/util/envflag"
	"github.com/aqlab/aqingest/internal/warehouse"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const (
	// defaultDataURL points at a small OpenAQ archive slice; any
	// open CSV or gzipped CSV works.
	defaultDataURL = "https://openaq-data-archive.s3.amazonaws.com/records/csv.gz/" +
		"locationid=2178/year=2022/month=05/location-2178-20220503.csv.gz"
	defaultFetchTimeout  = time.Minute
	defaultProcessedPath = "data/processed/opendata_clean.csv"
	defaultRawPath       = "data/raw/opendata.csv.gz"
)

// Config contains the configuration for a full ingestion run.
type Config struct {
	Docstore  docstore.Config
	Warehouse warehouse.Config

	// DataURL is the HTTP source of the raw dataset.
	DataURL string
	// FetchTimeout is the overall budget for the download.
	FetchTimeout time.Duration
	// ProcessedPath is where the cleaned dataset is written.
	ProcessedPath string
	// RawPath is where the raw download is written.
	RawPath string
	// SkipDocstore disables the document store destination.
	SkipDocstore bool
	// SkipEngine disables the embedded engine; the in-memory
	// cleaner runs instead.
	SkipEngine bool
	// SkipWarehouse disables the warehouse destination.
	SkipWarehouse bool
}

// Bind adds flags to the set. It delegates to the embedded configs.
func (c *Config) Bind(f *pflag.FlagSet) {
	c.Docstore.Bind(f)
	c.Warehouse.Bind(f)

	f.StringVar(&c.DataURL, "dataURL", envflag.Or("DATA_URL", defaultDataURL),
		"the HTTP URL of the source dataset (CSV or gzipped CSV)")
	f.DurationVar(&c.FetchTimeout, "fetchTimeout", defaultFetchTimeout,
		"overall time budget for downloading the source dataset")
	f.StringVar(&c.ProcessedPath, "processedPath", envflag.Or("PROCESSED_PATH", defaultProcessedPath),
		"where to write the cleaned dataset")
	f.StringVar(&c.RawPath, "rawPath", envflag.Or("RAW_PATH", defaultRawPath),
		"where to write the raw download")
	f.BoolVar(&c.SkipDocstore, "skipWeaviate", envflag.Bool("SKIP_WEAVIATE"),
		"do not ingest into the document store")
	f.BoolVar(&c.SkipEngine, "skipDuckDB", envflag.Bool("SKIP_DUCKDB"),
		"clean with the in-memory engine instead of the embedded database")
	f.BoolVar(&c.SkipWarehouse, "skipPostgres", envflag.Bool("SKIP_POSTGRES"),
		"do not load the warehouse")
}

// Preflight updates the configuration with sane defaults or returns an
// error if there are missing options for which a default cannot be
// provided. Destinations that are skipped are not validated, so a
// run can opt out of a misconfigured component.
func (c *Config) Preflight() error {
	if !c.SkipDocstore {
		if err := c.Docstore.Preflight(); err != nil {
			return err
		}
	}
	if !c.SkipWarehouse {
		if err := c.Warehouse.Preflight(); err != nil {
			return err
		}
	}

	if c.DataURL == "" {
		return errors.New("no dataset URL specified")
	}
	u, err := url.Parse(c.DataURL)
	if err != nil {
		return errors.Wrapf(err, "invalid dataset URL %q", c.DataURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("dataset URL must be http or https, have %q", c.DataURL)
	}
	if c.RawPath == "" {
		return errors.New("no raw path specified")
	}
	if c.ProcessedPath == "" {
		return errors.New("no processed path specified")
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = defaultFetchTimeout
	}
	return nil
}
