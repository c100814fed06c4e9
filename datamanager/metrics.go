// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datamanager

import "github.com/prometheus/client_golang/prometheus"

const (
	MetricDatasetsOpened = "datasets_opened_total"
	MetricRowsSelected   = "rows_selected_total"
	MetricSelectDuration = "select_duration_seconds"
)

var CounterDatasetsOpened = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "datatable",
		Name:      MetricDatasetsOpened,
		Help:      "Datasets opened, by backend.",
	},
	[]string{
		"backend",
	},
)

var CounterRowsSelected = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "datatable",
		Name:      MetricRowsSelected,
		Help:      "Rows returned by Select, by backend.",
	},
	[]string{
		"backend",
	},
)

var HistogramSelectDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "datatable",
		Name:      MetricSelectDuration,
		Help:      "Time spent in Select, by backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{
		"backend",
	},
)

func init() {
	prometheus.MustRegister(CounterDatasetsOpened)
	prometheus.MustRegister(CounterRowsSelected)
	prometheus.MustRegister(HistogramSelectDuration)
}
