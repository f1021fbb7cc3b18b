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

package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aqlab/aqingest/internal/fetch"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	r := require.New(t)

	const payload = "location,value\nOak Park,12.5\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	// The destination's parent directory does not exist yet.
	dest := filepath.Join(t.TempDir(), "raw", "opendata.csv")
	n, err := fetch.Fetch(context.Background(), srv.Client(), srv.URL, dest)
	r.NoError(err)
	r.Equal(int64(len(payload)), n)

	data, err := os.ReadFile(dest)
	r.NoError(err)
	r.Equal(payload, string(data))
}

// TestFetchBadStatus checks that an error page becomes an error, and
// that the page body is quoted in the message.
func TestFetchBadStatus(t *testing.T) {
	r := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "dataset has moved", http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "raw.csv")
	_, err := fetch.Fetch(context.Background(), srv.Client(), srv.URL, dest)
	r.ErrorContains(err, "status 404")
	r.ErrorContains(err, "dataset has moved")

	_, statErr := os.Stat(dest)
	r.True(os.IsNotExist(statErr), "no file should be written on a failed fetch")
}

func TestFetchConnectionRefused(t *testing.T) {
	r := require.New(t)

	srv := httptest.NewServer(http.NewServeMux())
	url := srv.URL
	srv.Close()

	_, err := fetch.Fetch(context.Background(), http.DefaultClient, url, filepath.Join(t.TempDir(), "raw.csv"))
	r.ErrorContains(err, "could not fetch")
}

func TestFetchCanceled(t *testing.T) {
	r := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	defer srv.Close()

	_, err := fetch.Fetch(ctx, srv.Client(), srv.URL, filepath.Join(t.TempDir(), "raw.csv"))
	r.Error(err)
}
