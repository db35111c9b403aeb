package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sighpp/sightview/pkg/config"
	"github.com/sighpp/sightview/pkg/logger"
)

type Monitoring struct {
	conf   config.Monitoring
	server *http.Server
	log    *logger.Logger
}

// New creates new monitoring service.
func New(conf config.Monitoring, log *logger.Logger) *Monitoring {
	m := &Monitoring{conf: conf, log: log}
	m.server = &http.Server{Addr: fmt.Sprintf(":%d", conf.Port), ReadHeaderTimeout: 10 * time.Second}
	m.server.Handler = m.handler()
	return m
}

func (m *Monitoring) handler() http.Handler {
	h := http.NewServeMux()

	if m.conf.ProfilingEnabled {
		prefix := fmt.Sprintf("%s/debug/pprof", m.conf.URLPrefix)
		m.log.Info().Msgf("Profiling is enabled at %v", m.server.Addr+prefix)
		h.HandleFunc(prefix+"/", pprof.Index)
		h.HandleFunc(prefix+"/cmdline", pprof.Cmdline)
		h.HandleFunc(prefix+"/profile", pprof.Profile)
		h.HandleFunc(prefix+"/symbol", pprof.Symbol)
		h.HandleFunc(prefix+"/trace", pprof.Trace)
		// named profiles are not routed by the index under a custom prefix
		for _, p := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
			h.Handle(prefix+"/"+p, pprof.Handler(p))
		}
	}

	if m.conf.MetricEnabled {
		metricPath := fmt.Sprintf("%s/metrics", m.conf.URLPrefix)
		m.log.Info().Msgf("Prometheus metric is enabled at %v", m.server.Addr+metricPath)
		h.Handle(metricPath, promhttp.Handler())
	}

	return h
}

func (m *Monitoring) Run() {
	m.log.Info().Msgf("Starting monitoring server at %v", m.server.Addr)
	go func() {
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.log.Error().Err(err).Msg("monitoring server")
		}
	}()
}

func (m *Monitoring) Shutdown(ctx context.Context) error {
	m.log.Info().Msg("Shutting down monitoring server")
	return m.server.Shutdown(ctx)
}

func (m *Monitoring) String() string {
	return fmt.Sprintf("monitoring::%s:%d", m.conf.URLPrefix, m.conf.Port)
}
