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
	"net/http"

	"github.com/pkg/errors"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/grpc"
)

// Conn provides the connection to the document store.
type Conn struct {
	client *weaviate.Client
	config *Config
	// The transport is owned by the Conn so that Close can release
	// its idle connections.
	transport *http.Client
}

// NewConn constructs a client for the configured store. No network
// traffic occurs until the Conn is used; readiness is established
// separately by WaitForReady.
func NewConn(config *Config) (*Conn, error) {
	transport := &http.Client{}
	cfg := weaviate.Config{
		Host:             config.host,
		Scheme:           config.scheme,
		ConnectionClient: transport,
	}
	if config.GRPCPort > 0 {
		cfg.GrpcConfig = &grpc.Config{
			Host:    config.grpcHost,
			Secured: config.scheme == "https",
		}
	}
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure document store client")
	}
	return &Conn{
		client:    client,
		config:    config,
		transport: transport,
	}, nil
}

// Close releases the connections held by the Conn's transport.
func (c *Conn) Close() {
	c.transport.CloseIdleConnections()
}
