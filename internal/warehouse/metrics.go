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

package warehouse

import (
	"github.com/aqlab/aqingest/internal/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "warehouse_load_seconds",
		Help:    "the time spent replacing the warehouse table",
		Buckets: metrics.LatencyBuckets,
	})
	rowCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_rows_total",
		Help: "the number of rows copied into the warehouse",
	})
)
