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

// Package docstore mirrors cleaned datasets into a Weaviate
// document store.
//
// The store is treated as a best-effort destination: callers decide
// whether its errors abort a run. Within this package a failed
// shutdown is only ever logged, and a rejected document is reported
// without cutting the batch short.
package docstore

import (
	"context"

	"github.com/aqlab/aqingest/internal/frame"
)

// Store is the pipeline-facing facade over the document store. Each
// Ingest call owns a private Conn whose lifetime is scoped to the
// call.
type Store struct {
	config *Config
}

// NewStore constructs the facade. The Config must have been through
// Preflight.
func NewStore(config *Config) *Store {
	return &Store{config: config}
}

// Ingest waits for the store to become ready, ensures the collection
// exists, and writes the Frame into it.
func (s *Store) Ingest(ctx context.Context, f *frame.Frame) error {
	conn, err := NewConn(s.config)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WaitForReady(ctx); err != nil {
		return err
	}
	if err := conn.EnsureSchema(ctx); err != nil {
		return err
	}
	return conn.Ingest(ctx, f)
}

// Ping proves the store answers its readiness endpoint.
func (s *Store) Ping(ctx context.Context) error {
	conn, err := NewConn(s.config)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.WaitForReady(ctx)
}
