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

// Package fetch downloads source datasets over HTTP.
package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Fetch streams the document at url into the file at dest, creating
// parent directories as needed. The raw bytes are written exactly as
// received; a gzip-compressed source stays compressed on disk. It
// returns the number of bytes written.
func Fetch(ctx context.Context, client *http.Client, url, dest string) (int64, error) {
	start := time.Now()
	log.WithField("url", url).Debug("downloading dataset")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "could not build request for %s", url)
	}
	resp, err := client.Do(req)
	if err != nil {
		errorCount.Inc()
		return 0, errors.Wrapf(err, "could not fetch %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		errorCount.Inc()
		// Include a snippet of the body; error pages usually say why.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, errors.Errorf("fetching %s: status %d: %s",
			url, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, errors.WithStack(err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return 0, errors.Wrapf(err, "could not create %s", dest)
	}
	n, err := io.Copy(out, resp.Body)
	if err != nil {
		_ = out.Close()
		errorCount.Inc()
		return n, errors.Wrapf(err, "writing %s", dest)
	}
	if err := out.Close(); err != nil {
		return n, errors.Wrapf(err, "writing %s", dest)
	}

	byteCount.Add(float64(n))
	fetchDuration.Observe(time.Since(start).Seconds())
	log.WithFields(log.Fields{
		"url":   url,
		"dest":  dest,
		"bytes": n,
	}).Info("dataset downloaded")
	return n, nil
}
