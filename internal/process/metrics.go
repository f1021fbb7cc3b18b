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

package process

import (
	"time"

	"github.com/aqlab/aqingest/internal/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	engineLabels = []string{"engine"}
)
var (
	cleanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "process_clean_seconds",
		Help:    "the time spent cleaning the dataset",
		Buckets: metrics.LatencyBuckets,
	}, engineLabels)
	rowsDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "process_rows_discarded_total",
		Help: "the number of rows dropped by the cleaning filter",
	}, engineLabels)
	rowsKept = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "process_rows_kept",
		Help:    "the number of rows surviving the cleaning filter",
		Buckets: metrics.RowBuckets,
	}, engineLabels)
)

func observeClean(engine string, in, out int, elapsed time.Duration) {
	cleanDuration.WithLabelValues(engine).Observe(elapsed.Seconds())
	rowsDiscarded.WithLabelValues(engine).Add(float64(in - out))
	rowsKept.WithLabelValues(engine).Observe(float64(out))
}
