// Vizx
// Copyright (C) 2013-2024+ James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package prometheus provides functions that are useful to control and manage
// the built-in prometheus instance.
package prometheus

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/purpleidea/vizx/util/errwrap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultPrometheusListen is registered in
// https://github.com/prometheus/prometheus/wiki/Default-port-allocations
const DefaultPrometheusListen = "127.0.0.1:9233"

// Prometheus is the struct that contains information about the
// prometheus instance. Run Init() on it.
type Prometheus struct {
	Listen string // the listen specification for the net/http server

	// Stages are the render stages to create series for up front. If it
	// is empty, series are only created when first seen.
	Stages []string

	registry *prometheus.Registry
	server   *http.Server

	renderTotal             *prometheus.CounterVec // total of renders by final stage
	renderDuration          prometheus.Histogram   // time spent in each render
	ambiguousTotal          prometheus.Counter     // total of inputs with more than one parse
	processStartTimeSeconds prometheus.Gauge       // process start time in seconds since unix epoch
}

// Init some parameters - currently the Listen address and the metrics.
func (obj *Prometheus) Init() error {
	if len(obj.Listen) == 0 {
		obj.Listen = DefaultPrometheusListen
	}
	obj.registry = prometheus.NewRegistry()

	obj.renderTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vizx_render_total",
			Help: "Number of renders that have run.",
		},
		// Labels for this metric.
		// stage: the stage the render ended in, "done" if it succeeded
		// errorful: did the render generate an error
		[]string{"stage", "errorful"},
	)
	obj.renderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vizx_render_duration_seconds",
			Help:    "Time taken by a render, from the source text to the placed tree.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
	obj.ambiguousTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vizx_ambiguous_total",
			Help: "Number of inputs that had more than one distinct parse.",
		},
	)
	obj.processStartTimeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vizx_process_start_time_seconds",
			Help: "Start time of the process since unix epoch in seconds.",
		},
	)

	for _, c := range []prometheus.Collector{obj.renderTotal, obj.renderDuration, obj.ambiguousTotal, obj.processStartTimeSeconds} {
		if err := obj.registry.Register(c); err != nil {
			return errwrap.Wrapf(err, "could not register metric")
		}
	}
	// directly set the processStartTimeSeconds
	obj.processStartTimeSeconds.SetToCurrentTime()

	for _, stage := range obj.Stages {
		for _, errorful := range []bool{false, true} {
			labels := prometheus.Labels{"stage": stage, "errorful": strconv.FormatBool(errorful)}
			obj.renderTotal.With(labels) // create it
		}
	}
	return nil
}

// Gatherer returns the registry that holds our metrics.
func (obj *Prometheus) Gatherer() prometheus.Gatherer {
	return obj.registry
}

// Handler returns an http handler that responds as prometheus would expect.
func (obj *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(obj.registry, promhttp.HandlerOpts{})
}

// Start runs a http server in a go routine, that responds to /metrics as
// prometheus would expect.
func (obj *Prometheus) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", obj.Handler())

	listener, err := net.Listen("tcp", obj.Listen)
	if err != nil {
		return errwrap.Wrapf(err, "can't listen on %s", obj.Listen)
	}
	obj.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go obj.server.Serve(listener) // returns ErrServerClosed on Stop
	return nil
}

// Stop the http server.
func (obj *Prometheus) Stop() error {
	if obj.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return obj.server.Shutdown(ctx)
}

// UpdateRenderTotal counts a render which ended in the given stage.
func (obj *Prometheus) UpdateRenderTotal(stage string, errorful bool) error {
	labels := prometheus.Labels{"stage": stage, "errorful": strconv.FormatBool(errorful)}
	metric, err := obj.renderTotal.GetMetricWith(labels)
	if err != nil {
		return err
	}
	metric.Inc()
	return nil
}

// UpdateRenderDuration records the duration of a single render.
func (obj *Prometheus) UpdateRenderDuration(d time.Duration) error {
	obj.renderDuration.Observe(d.Seconds())
	return nil
}

// UpdateAmbiguousTotal counts an input with more than one parse.
func (obj *Prometheus) UpdateAmbiguousTotal() error {
	obj.ambiguousTotal.Inc()
	return nil
}
