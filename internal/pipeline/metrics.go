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

package pipeline

import (
	"github.com/aqlab/aqingest/internal/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fallbackCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_fallback_total",
		Help: "the number of runs that fell back to the in-memory cleaner",
	})
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pipeline_run_seconds",
		Help:    "the time spent on a complete ingestion run",
		Buckets: metrics.LatencyBuckets,
	})
	stageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_stage_failures_total",
		Help: "the number of stage failures, fatal or not",
	}, []string{"stage"})
)
