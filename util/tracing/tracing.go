// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tracing sets up the OpenTracing tracer used by the goinfer commands.
package tracing

import (
	"errors"
	"io"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// New creates a Jaeger tracer that reports every span to the given collector,
// and installs it as the global OpenTracing tracer. collector is either a
// host:port or the full URL of the collector's HTTP endpoint. The returned
// Closer flushes buffered spans and should be closed before exiting.
func New(serviceName string, collector string) (io.Closer, error) {
	if collector == "" {
		return nil, errors.New("tracing: no collector given")
	}
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			CollectorEndpoint: collectorURL(collector),
		},
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(logAdapter{}))
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	log.WithFields(log.Fields{
		"service":   serviceName,
		"collector": cfg.Reporter.CollectorEndpoint,
	}).Debug("Initialized tracing")
	return closer, nil
}

func collectorURL(collector string) string {
	if strings.Contains(collector, "://") {
		return collector
	}
	return "http://" + collector + "/api/traces"
}

// logAdapter implements jaeger.Logger.
type logAdapter struct{}

func (logAdapter) Error(msg string) {
	log.Warnf("Tracing: %v", msg)
}

func (logAdapter) Infof(msg string, args ...interface{}) {
	log.Debugf("Tracing: "+msg, args...)
}
