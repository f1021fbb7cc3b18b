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
	"context"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
)

// WaitForReady blocks until the document store answers a schema
// read, polling at the configured interval. A store that is up but
// still unable to serve (electing a leader, warming up) fails the
// probe with a status code; those probes are retried like connection
// failures, since both resolve themselves given time. The total wait
// is bounded by the configured ReadyTimeout.
func (c *Conn) WaitForReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ReadyTimeout)
	defer cancel()

	operation := func() error {
		_, err := c.client.Schema().Getter().Do(ctx)
		return err
	}
	notify := func(err error, delay time.Duration) {
		readyRetryCount.Inc()
		entry := log.WithField("delay", delay)
		wvErr := (*fault.WeaviateClientError)(nil)
		switch {
		case errors.As(err, &wvErr) && wvErr.StatusCode == http.StatusForbidden:
			entry.Warn("document store denied the readiness probe; it may still be electing a leader")
		case errors.As(err, &wvErr) && wvErr.IsUnexpectedStatusCode:
			entry.WithField("status", wvErr.StatusCode).
				Warn("document store returned an unexpected status")
		case errors.As(err, &wvErr):
			entry.WithError(err).Warn("document store is not reachable")
		default:
			entry.WithError(err).Warn("document store readiness probe failed")
		}
	}

	bo := backoff.WithContext(backoff.NewConstantBackOff(c.config.PollInterval), ctx)
	if err := backoff.RetryNotify(operation, bo, notify); err != nil {
		return errors.Wrapf(err, "document store not ready within %s", c.config.ReadyTimeout)
	}
	log.WithField("host", c.config.host).Debug("document store is ready")
	return nil
}
