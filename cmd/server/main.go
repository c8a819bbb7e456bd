package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"therapy-practice-admin/internal/config"
	"therapy-practice-admin/internal/handler"
	"therapy-practice-admin/internal/health"
	"therapy-practice-admin/internal/invoice"
	"therapy-practice-admin/internal/logging"
	"therapy-practice-admin/internal/middleware"
	"therapy-practice-admin/internal/store"
	"therapy-practice-admin/internal/store/migrations"
	"therapy-practice-admin/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	// database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	log.Info("connected to postgres")

	if cfg.AutoMigrate {
		db := stdlib.OpenDBFromPool(pool)
		err := migrations.Apply(ctx, db)
		db.Close()
		if err != nil {
			log.Fatalf("migrate: %v", err)
		}
		log.Info("migrations applied")
	}

	st := store.New(pool)
	if n, err := st.PurgeSessions(ctx); err != nil {
		log.WithError(err).Warn("purge sessions")
	} else if n > 0 {
		log.WithField("count", n).Info("purged ended sessions")
	}

	fields, err := invoice.Default()
	if err != nil {
		log.Fatalf("invoice fields: %v", err)
	}
	cols, err := st.InvoiceColumns(ctx)
	if err != nil {
		log.Fatalf("invoice columns: %v", err)
	}
	extra, err := fields.Verify(cols)
	if err != nil {
		log.Fatalf("invoice fields: %v", err)
	}
	if len(extra) > 0 {
		log.WithField("columns", extra).Warn("invoice columns not shown in forms")
	}

	pages, err := view.New()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	h := handler.New(st, pages, handler.Config{
		Secret:       cfg.SessionSecret,
		SessionTTL:   cfg.SessionTTL,
		SecureCookie: cfg.CookieSecure,
		Fields:       fields,
		Log:          log,
	})

	// grpc health on TCP
	hs := health.New()
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	go func() {
		log.Infof("grpc health on :%s", cfg.GRPCPort)
		if err := hs.Serve(lis); err != nil {
			log.WithError(err).Error("grpc health stopped")
		}
	}()

	rl := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst)
	httpSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           h.Routes(rl),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("http on :%s", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http")
		}
	}()
	hs.MarkServing()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info("shutting down")
	hs.Stop()
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
}
