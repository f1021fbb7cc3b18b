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
	"github.com/aqlab/aqingest/internal/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docstore_documents_total",
		Help: "the number of documents accepted by the document store",
	})
	ingestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docstore_ingest_seconds",
		Help:    "the time spent writing documents to the document store",
		Buckets: metrics.LatencyBuckets,
	})
	readyRetryCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docstore_ready_retries_total",
		Help: "the number of readiness probes that did not succeed",
	})
	rejectedCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docstore_documents_rejected_total",
		Help: "the number of documents rejected by the document store",
	})
)
