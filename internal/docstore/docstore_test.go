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

package docstore_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aqlab/aqingest/internal/docstore"
	"github.com/aqlab/aqingest/internal/frame"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate/entities/models"
)

// fakeStore is an HTTP double for the document store's REST surface.
// The client is configured without a gRPC port, so every call lands
// here.
type fakeStore struct {
	srv *httptest.Server

	mu       sync.Mutex
	classes  []*models.Class
	batches  [][]*models.Object
	getCount int
	// failProbes makes the first N schema reads fail with the given
	// status.
	failProbes int
	failStatus int
	// rejectFirst marks the first object of the first batch as
	// rejected.
	rejectFirst bool
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	f := &fakeStore{}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/schema", f.handleSchema)
	mux.HandleFunc("/v1/batch/objects", f.handleBatch)
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeStore) handleSchema(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		f.getCount++
		if f.failProbes > 0 {
			f.failProbes--
			w.WriteHeader(f.failStatus)
			_, _ = w.Write([]byte(`{"error":[{"message":"not ready"}]}`))
			return
		}
		_ = json.NewEncoder(w).Encode(&models.Schema{Classes: f.classes})
	case http.MethodPost:
		class := &models.Class{}
		if err := json.NewDecoder(r.Body).Decode(class); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		f.classes = append(f.classes, class)
		_ = json.NewEncoder(w).Encode(class)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeStore) handleBatch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var req struct {
		Objects []*models.Object `json:"objects"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	first := len(f.batches) == 0
	f.batches = append(f.batches, req.Objects)

	status := "SUCCESS"
	resp := make([]*models.ObjectsGetResponse, len(req.Objects))
	for i, obj := range req.Objects {
		resp[i] = &models.ObjectsGetResponse{
			Object: *obj,
			Result: &models.ObjectsGetResponseAO2Result{Status: &status},
		}
	}
	if f.rejectFirst && first && len(resp) > 0 {
		failed := "FAILED"
		resp[0].Result = &models.ObjectsGetResponseAO2Result{
			Status: &failed,
			Errors: &models.ErrorResponse{
				Error: []*models.ErrorResponseErrorItems0{{Message: "invalid property"}},
			},
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (f *fakeStore) config(t *testing.T) *docstore.Config {
	t.Helper()
	cfg := &docstore.Config{
		BatchSize:    2,
		Class:        "Measurement",
		GRPCPort:     0, // keep the client on the REST transport
		PollInterval: 10 * time.Millisecond,
		ReadyTimeout: 2 * time.Second,
		URL:          f.srv.URL,
	}
	require.NoError(t, cfg.Preflight())
	return cfg
}

func cleanedFrame() *frame.Frame {
	f := frame.New("location", "city", "value", "station_id")
	f.Rows = [][]any{
		{"Oak Park", "Chicago", 12.5, "OP-1"},
		{"Station 9", nil, 0.061, "ST-9"},
		{"Borivali", "Mumbai", 4.0, "BR-2"},
	}
	return f
}

// TestStoreIngest drives the full facade sequence: readiness probe,
// collection creation, then batched inserts.
func TestStoreIngest(t *testing.T) {
	r := require.New(t)
	fake := newFakeStore(t)

	r.NoError(docstore.NewStore(fake.config(t)).Ingest(context.Background(), cleanedFrame()))

	fake.mu.Lock()
	defer fake.mu.Unlock()

	// The collection layout is fixed; it does not follow the header.
	r.Len(fake.classes, 1)
	r.Equal("Measurement", fake.classes[0].Class)
	types := map[string]string{}
	for _, p := range fake.classes[0].Properties {
		types[p.Name] = p.DataType[0]
	}
	r.Equal(map[string]string{
		"location":  "text",
		"city":      "text",
		"country":   "text",
		"parameter": "text",
		"value":     "number",
		"unit":      "text",
	}, types)

	// Three rows with a batch size of two means two batches.
	r.Len(fake.batches, 2)
	r.Len(fake.batches[0], 2)
	r.Len(fake.batches[1], 1)

	props, ok := fake.batches[0][0].Properties.(map[string]interface{})
	r.True(ok)
	r.Equal("Oak Park", props["location"])
	r.Equal(12.5, props["value"])
	// Columns the dataset never had are defaulted, and columns
	// outside the layout are not sent.
	r.Equal("", props["country"])
	r.Equal("", props["unit"])
	r.NotContains(props, "station_id")

	// A nil text cell comes through as an empty string, not a null.
	props, ok = fake.batches[0][1].Properties.(map[string]interface{})
	r.True(ok)
	r.Equal("", props["city"])
	r.Equal(0.061, props["value"])
}

// TestEnsureSchemaIdempotent checks that an existing collection is
// left alone on a second run.
func TestEnsureSchemaIdempotent(t *testing.T) {
	r := require.New(t)
	fake := newFakeStore(t)
	fake.classes = []*models.Class{{Class: "Measurement"}}

	conn, err := docstore.NewConn(fake.config(t))
	r.NoError(err)
	defer conn.Close()

	r.NoError(conn.EnsureSchema(context.Background()))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	r.Len(fake.classes, 1, "no second collection may be created")
}

// TestIngestRejected checks that a rejected document surfaces as an
// error without stopping later batches.
func TestIngestRejected(t *testing.T) {
	r := require.New(t)
	fake := newFakeStore(t)
	fake.rejectFirst = true

	conn, err := docstore.NewConn(fake.config(t))
	r.NoError(err)
	defer conn.Close()

	err = conn.Ingest(context.Background(), cleanedFrame())
	r.ErrorContains(err, "rejected 1 of 3")
	r.ErrorContains(err, "invalid property")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	r.Len(fake.batches, 2, "the second batch is still sent")
}

// TestWaitForReadyFlap checks that probe failures with a status code
// are retried until the store recovers.
func TestWaitForReadyFlap(t *testing.T) {
	r := require.New(t)
	fake := newFakeStore(t)
	fake.failProbes = 2
	fake.failStatus = http.StatusServiceUnavailable

	conn, err := docstore.NewConn(fake.config(t))
	r.NoError(err)
	defer conn.Close()

	r.NoError(conn.WaitForReady(context.Background()))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	r.Equal(3, fake.getCount)
}

func TestWaitForReadyPermissionDenied(t *testing.T) {
	r := require.New(t)
	fake := newFakeStore(t)
	fake.failProbes = 1
	fake.failStatus = http.StatusForbidden

	conn, err := docstore.NewConn(fake.config(t))
	r.NoError(err)
	defer conn.Close()

	r.NoError(conn.WaitForReady(context.Background()))
}

// TestWaitForReadyTimeout checks that a store that never recovers
// bounds the wait at the configured timeout.
func TestWaitForReadyTimeout(t *testing.T) {
	r := require.New(t)
	fake := newFakeStore(t)
	fake.failProbes = 1 << 30
	fake.failStatus = http.StatusServiceUnavailable

	cfg := fake.config(t)
	cfg.ReadyTimeout = 150 * time.Millisecond
	cfg.PollInterval = 20 * time.Millisecond

	conn, err := docstore.NewConn(cfg)
	r.NoError(err)
	defer conn.Close()

	start := time.Now()
	err = conn.WaitForReady(context.Background())
	r.ErrorContains(err, "not ready within")
	r.Less(time.Since(start), time.Second)
}

func TestWaitForReadyUnreachable(t *testing.T) {
	r := require.New(t)
	fake := newFakeStore(t)

	cfg := fake.config(t)
	cfg.ReadyTimeout = 150 * time.Millisecond
	cfg.PollInterval = 20 * time.Millisecond
	fake.srv.Close()

	conn, err := docstore.NewConn(cfg)
	r.NoError(err)
	defer conn.Close()

	r.ErrorContains(conn.WaitForReady(context.Background()), "not ready within")
}
