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
	"fmt"
	"net/url"
	"time"

	"github.com/aqlab/aqingest/internal/util/envflag"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const (
	defaultBatchSize    = 100
	defaultClass        = "Measurement"
	defaultGRPCPort     = 50051
	defaultHTTPPort     = 8080
	defaultPollInterval = 5 * time.Second
	defaultReadyTimeout = 2 * time.Minute
	defaultURL          = "http://weaviate:8080"
)

// Config contains the configuration necessary for creating a
// connection to the document store.
type Config struct {
	// BatchSize is the number of documents per insert batch.
	BatchSize int
	// Class is the document collection to ingest into.
	Class string
	// GRPCPort is the store's gRPC port. Zero disables the gRPC
	// transport and forces all traffic onto HTTP.
	GRPCPort int
	// PollInterval is the time between readiness probes.
	PollInterval time.Duration
	// ReadyTimeout bounds the total time spent waiting for the
	// store to become ready.
	ReadyTimeout time.Duration
	// URL is the base HTTP URL of the store.
	URL string

	// The following are computed by Preflight.
	grpcHost string
	host     string
	scheme   string
}

// Bind adds flags to the set. Defaults are resolved against the
// environment so that container deployments can configure the store
// without a command line.
func (c *Config) Bind(f *pflag.FlagSet) {
	f.IntVar(&c.BatchSize, "docstoreBatch", defaultBatchSize,
		"number of documents per document store insert batch")
	f.StringVar(&c.Class, "collection", envflag.Or("WEAVIATE_CLASS", defaultClass),
		"the document store collection to ingest into")
	f.IntVar(&c.GRPCPort, "docstoreGRPCPort", defaultGRPCPort,
		"the document store gRPC port; 0 to use HTTP only")
	f.DurationVar(&c.PollInterval, "pollInterval", defaultPollInterval,
		"time to wait between document store readiness probes")
	f.DurationVar(&c.ReadyTimeout, "readyTimeout", defaultReadyTimeout,
		"maximum time to wait for the document store to become ready")
	f.StringVar(&c.URL, "docstoreURL", envflag.Or("WEAVIATE_URL", defaultURL),
		"the base URL of the document store")
}

// Preflight updates the configuration with sane defaults or returns an
// error if there are missing options for which a default cannot be
// provided.
func (c *Config) Preflight() error {
	if c.Class == "" {
		return errors.New("no document collection specified")
	}
	if c.BatchSize < 1 {
		c.BatchSize = defaultBatchSize
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.ReadyTimeout <= 0 {
		c.ReadyTimeout = defaultReadyTimeout
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return errors.Wrapf(err, "invalid document store URL %q", c.URL)
	}
	switch u.Scheme {
	case "http", "https":
		c.scheme = u.Scheme
	default:
		return errors.Errorf("document store URL must be http or https, have %q", c.URL)
	}
	if u.Hostname() == "" {
		return errors.Errorf("document store URL has no host: %q", c.URL)
	}
	port := u.Port()
	if port == "" {
		port = fmt.Sprint(defaultHTTPPort)
	}
	c.host = fmt.Sprintf("%s:%s", u.Hostname(), port)
	c.grpcHost = fmt.Sprintf("%s:%d", u.Hostname(), c.GRPCPort)
	return nil
}
