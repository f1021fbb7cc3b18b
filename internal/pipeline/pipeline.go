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

// Package pipeline orchestrates a single ingestion run: download,
// clean, mirror to the document store, load the warehouse.
//
// The stages run strictly in order. Failure handling is deliberately
// uneven: the document store is best-effort and cannot fail the run,
// the embedded cleaning engine is replaceable by the in-memory
// fallback, and everything else is fatal.
package pipeline

import (
	"context"
	"net/http"
	"time"

	"github.com/aqlab/aqingest/internal/docstore"
	"github.com/aqlab/aqingest/internal/fetch"
	"github.com/aqlab/aqingest/internal/frame"
	"github.com/aqlab/aqingest/internal/process"
	"github.com/aqlab/aqingest/internal/warehouse"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// A Cleaner turns a raw Frame into its analytic form.
type Cleaner interface {
	// Name identifies the engine in logs.
	Name() string
	// Clean returns a new Frame; the input is unchanged.
	Clean(context.Context, *frame.Frame) (*frame.Frame, error)
}

// A DocSink mirrors a cleaned Frame into a document store.
type DocSink interface {
	Ingest(context.Context, *frame.Frame) error
}

// A TableSink loads a cleaned Frame into a relational table and
// reports the number of rows written.
type TableSink interface {
	Load(context.Context, *frame.Frame) (int64, error)
}

// Pipeline executes the ingestion stages in order. The zero value is
// not usable; construct with New.
type Pipeline struct {
	cfg *Config

	// The stages below are the seams for testing.
	fetch    func(context.Context) error
	load     func() (*frame.Frame, error)
	engine   Cleaner   // nil when the embedded engine is skipped
	fallback Cleaner   // always set
	docs     DocSink   // nil when the document store is skipped
	tables   TableSink // nil when the warehouse is skipped
}

// New wires the production stages for the given configuration. The
// Config must have been through Preflight.
func New(cfg *Config) *Pipeline {
	client := &http.Client{Timeout: cfg.FetchTimeout}
	opts := process.Options{ProcessedPath: cfg.ProcessedPath}
	p := &Pipeline{
		cfg: cfg,
		fetch: func(ctx context.Context) error {
			_, err := fetch.Fetch(ctx, client, cfg.DataURL, cfg.RawPath)
			return err
		},
		load:     func() (*frame.Frame, error) { return frame.ReadFile(cfg.RawPath) },
		fallback: process.NewMemory(opts),
	}
	if !cfg.SkipEngine {
		p.engine = process.NewDuck(opts)
	}
	if !cfg.SkipDocstore {
		p.docs = docstore.NewStore(&cfg.Docstore)
	}
	if !cfg.SkipWarehouse {
		p.tables = warehouse.New(&cfg.Warehouse)
	}
	return p
}

// Run executes one ingestion pass. The returned error is nil when
// the run produced a loaded warehouse table (or the warehouse was
// skipped); a document store failure alone does not fail the run.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	log.WithFields(log.Fields{
		"url":           p.cfg.DataURL,
		"skipDocstore":  p.docs == nil,
		"skipEngine":    p.engine == nil,
		"skipWarehouse": p.tables == nil,
	}).Info("ingestion starting")

	if err := p.fetch(ctx); err != nil {
		stageFailures.WithLabelValues("fetch").Inc()
		return err
	}
	raw, err := p.load()
	if err != nil {
		stageFailures.WithLabelValues("load").Inc()
		return err
	}
	log.WithFields(log.Fields{
		"rows":    raw.Len(),
		"columns": len(raw.Columns),
	}).Info("raw dataset loaded")

	cleaned, err := p.clean(ctx, raw)
	if err != nil {
		stageFailures.WithLabelValues("clean").Inc()
		return err
	}

	if p.docs == nil {
		log.Info("document store ingestion skipped")
	} else if err := p.docs.Ingest(ctx, cleaned); err != nil {
		// Best-effort destination: log and carry on.
		stageFailures.WithLabelValues("docstore").Inc()
		log.WithError(err).Error("document store ingestion failed; continuing without it")
	}

	if p.tables == nil {
		log.Info("warehouse load skipped")
	} else if _, err := p.tables.Load(ctx, cleaned); err != nil {
		stageFailures.WithLabelValues("warehouse").Inc()
		return err
	}

	runDuration.Observe(time.Since(start).Seconds())
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).
		Info("ingestion complete")
	return nil
}

// clean applies the engine policy: try the embedded engine when it
// is configured, and fall back to the in-memory cleaner on any
// engine error. Only a fallback error is fatal.
func (p *Pipeline) clean(ctx context.Context, raw *frame.Frame) (*frame.Frame, error) {
	if p.engine != nil {
		out, err := p.engine.Clean(ctx, raw)
		if err == nil {
			return out, nil
		}
		fallbackCount.Inc()
		log.WithError(err).Errorf("%s cleaning failed; falling back to %s",
			p.engine.Name(), p.fallback.Name())
	} else {
		log.Infof("embedded engine skipped; cleaning with %s", p.fallback.Name())
	}
	out, err := p.fallback.Clean(ctx, raw)
	return out, errors.Wrap(err, "fallback cleaning failed")
}
