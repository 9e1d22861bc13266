package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/park285/chess-arena/internal/arena"
	"github.com/park285/chess-arena/internal/auth"
	appcfg "github.com/park285/chess-arena/internal/config"
	"github.com/park285/chess-arena/internal/gateway"
	"github.com/park285/chess-arena/internal/msgcat"
	"github.com/park285/chess-arena/internal/obslog"
	"github.com/park285/chess-arena/internal/rules"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	codec, err := auth.NewTokenCodec(cfg.TokenSecret, 0)
	if err != nil {
		log.Fatalf("token codec error: %v", err)
	}
	cat, err := msgcat.New("")
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	hub := arena.NewHub(rules.NewStdEngine(), cat, arena.NewSessionDirectory(), arena.NewConnRegistry())
	hub.SetOutboundQueueSize(cfg.OutboundQueueSize)

	if cfg.DatabaseURL != "" {
		repo, err := arena.NewRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("repository init error: %v", err)
		}
		defer func() { _ = repo.Close() }()
		hub.AttachResultSink(repo)
	}
	if cfg.RedisURL != "" {
		recent, err := arena.NewRecentStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("recent store init error: %v", err)
		}
		defer func() { _ = recent.Close() }()
		hub.AttachResultSink(recent)
	}

	mux := http.NewServeMux()
	gateway.New(codec, hub).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obslog.L().Info("arena_listen", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		obslog.L().Error("arena_exit", zap.Error(err))
	}
}
