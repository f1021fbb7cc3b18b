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

package fetch

import (
	"github.com/aqlab/aqingest/internal/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	byteCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fetch_bytes_total",
		Help: "the number of raw dataset bytes written to disk",
	})
	errorCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fetch_errors_total",
		Help: "the number of failed download attempts",
	})
	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fetch_duration_seconds",
		Help:    "the time spent downloading the source dataset",
		Buckets: metrics.LatencyBuckets,
	})
)
