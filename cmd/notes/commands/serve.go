package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/MonaAghili/public-notes/internal/config"
	"github.com/MonaAghili/public-notes/internal/index"
	"github.com/MonaAghili/public-notes/internal/journal"
	"github.com/MonaAghili/public-notes/internal/logfields"
	"github.com/MonaAghili/public-notes/internal/metrics"
	"github.com/MonaAghili/public-notes/internal/notify"
	"github.com/MonaAghili/public-notes/internal/server"
)

// ServeCmd implements the 'serve' command: watch the content root and serve
// the query API until interrupted.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	contentRoot, err := resolveContentRoot(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var jnl *journal.Journal
	if cfg.Journal.Path != "" {
		jnl, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer jnl.Close()
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Server.NATSURL != "" {
		n, nerr := notify.NewNATSNotifier(cfg.Server.NATSURL, cfg.Server.NATSSubject)
		if nerr != nil {
			return nerr
		}
		defer n.Close()
		notifier = n
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prom.Registry
	if cfg.Server.Metrics {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	addr := cfg.Server.Addr
	if s.Addr != "" {
		addr = s.Addr
	}

	var srv *server.Server
	ix := index.New(contentRoot,
		index.WithRecorder(recorder),
		index.WithJournal(jnl),
		index.WithNotifier(notifier),
		index.WithChangeHook(func(revision uint64) {
			if srv != nil {
				srv.Hub().Broadcast(revision)
			}
		}),
	)

	serverOpts := []server.Option{server.WithJournal(jnl)}
	if registry != nil {
		serverOpts = append(serverOpts, server.WithMetrics(registry))
	}
	srv = server.New(addr, ix, serverOpts...)

	if err := ix.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if cerr := ix.Close(); cerr != nil {
			slog.Warn("index shutdown failed", logfields.Error(cerr))
		}
	}()

	if every := cfg.Server.ResyncEvery(); every > 0 {
		scheduler, serr := gocron.NewScheduler()
		if serr != nil {
			return serr
		}
		_, serr = scheduler.NewJob(
			gocron.DurationJob(every),
			gocron.NewTask(func() {
				if rerr := ix.Reload(ctx); rerr != nil {
					slog.Warn("scheduled resync failed", logfields.Error(rerr))
				}
			}),
		)
		if serr != nil {
			return serr
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
		slog.Info("scheduled resync enabled", slog.Duration("every", every))
	}

	return srv.Start(ctx)
}
