package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/agbru/quadbench/internal/logging"
	"github.com/agbru/quadbench/internal/metrics"
)

const metricsShutdownTimeout = 3 * time.Second

// metricsServer exposes a Recorder on /metrics for the duration of a sweep.
type metricsServer struct {
	srv  *http.Server
	addr net.Addr
	done chan struct{}
}

// startMetricsServer listens on addr and serves rec in the background. The
// listener is opened synchronously so that a bad address fails before the
// sweep starts.
func startMetricsServer(addr string, rec *metrics.Recorder, logger logging.Logger) (*metricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener on %q: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	ms := &metricsServer{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr: ln.Addr(),
		done: make(chan struct{}),
	}

	go func() {
		defer close(ms.done)
		if err := ms.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", err, logging.String("addr", ms.addr.String()))
		}
	}()
	logger.Info("serving metrics", logging.String("addr", ms.addr.String()))
	return ms, nil
}

// Addr returns the bound address, useful when addr had port 0.
func (ms *metricsServer) Addr() string { return ms.addr.String() }

// Stop shuts the server down, closing it outright if in-flight scrapes do
// not finish in time.
func (ms *metricsServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()
	if ms.srv.Shutdown(ctx) != nil {
		_ = ms.srv.Close()
	}
	<-ms.done
}
