package main

import (
	"net"
	"net/http"
	"strconv"

	"github.com/fwojciec/pyroxy"
	"github.com/fwojciec/pyroxy/fs"
	"github.com/fwojciec/pyroxy/goquery"
	pyhttp "github.com/fwojciec/pyroxy/http"
	"github.com/fwojciec/pyroxy/index"
	pyprom "github.com/fwojciec/pyroxy/prometheus"
	pyslog "github.com/fwojciec/pyroxy/slog"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Listen defaults.
const (
	DefaultHost = "localhost"
	DefaultPort = 5000
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg, logger := deps.Config, deps.Logger

	root, err := webPath(cfg)
	if err != nil {
		return err
	}
	addr, err := c.addr(cfg)
	if err != nil {
		return err
	}

	metrics := pyprom.NewMetrics(prometheus.NewRegistry())
	repo := fs.NewRepository(root)
	srv := &pyhttp.Server{
		Indexes: &index.Service{
			Config: cfg,
			Source: pyslog.NewLoggingIndexSource(repo, logger),
			Filter: pyslog.NewLoggingIndexFilter(
				pyprom.NewInstrumentedIndexFilter(&index.Filter{Config: cfg, Parser: goquery.NewParser()}, metrics),
				logger,
			),
		},
		Web:    pyslog.NewLoggingFileTree(repo, logger),
		Logger: logger,
	}
	if path, ok := cfg.Get(pyroxy.OptionPackagesPath); ok && path != "" {
		srv.Packages = pyslog.NewLoggingFileTree(fs.NewRepository(path), logger)
	}
	if srv.Limiter, err = limiter(cfg); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logger.Info("serving mirror", "addr", ln.Addr().String(), "root", repo.Root())

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		return pyhttp.Serve(ctx, ln, metrics.InstrumentHandler(srv.Handler()))
	})

	if metricsAddr, ok := cfg.Get(pyroxy.OptionMetricsAddr); ok && metricsAddr != "" {
		mln, err := net.Listen("tcp", metricsAddr)
		if err != nil {
			ln.Close()
			return err
		}
		logger.Info("serving metrics", "addr", mln.Addr().String())

		mux := http.NewServeMux()
		mux.Handle("GET /metrics", metrics.Handler())
		g.Go(func() error {
			return pyhttp.Serve(ctx, mln, mux)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("mirror stopped")
	return nil
}

// addr resolves the listen address from the flags, then the host and port
// options, then the defaults.
func (c *ServeCmd) addr(cfg *pyroxy.Config) (string, error) {
	host := c.Host
	if host == "" {
		host, _ = cfg.Get(pyroxy.OptionHost)
	}
	if host == "" {
		host = DefaultHost
	}

	port := c.Port
	if port == 0 {
		p, ok, err := cfg.Int(pyroxy.OptionPort)
		if err != nil {
			return "", err
		}
		port = DefaultPort
		if ok {
			port = p
		}
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// limiter builds the per-client rate limiter from rate_limit and
// rate_burst. It returns nil when rate_limit is unset or not positive.
func limiter(cfg *pyroxy.Config) (*pyhttp.ClientLimiter, error) {
	rps, ok, err := cfg.Float(pyroxy.OptionRateLimit)
	if err != nil || !ok || rps <= 0 {
		return nil, err
	}
	burst, _, err := cfg.Int(pyroxy.OptionRateBurst)
	if err != nil {
		return nil, err
	}
	return pyhttp.NewClientLimiter(rps, burst), nil
}
