package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"exchange-rates/internal"
	ratesapi "exchange-rates/internal/api/http/rates"
	"exchange-rates/internal/api/http/middleware"
	"exchange-rates/internal/postgresql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sync latest rates on a schedule and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.ValidateServe(); err != nil {
				return err
			}
			return runServe(cmd.Context(), a)
		},
	}
}

func runServe(ctx context.Context, a *app) error {
	cfg, log := a.cfg, a.log

	dbCtx, cancelDB := context.WithTimeout(ctx, 5*time.Second)
	defer cancelDB()

	pool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgresql.NewMigrations(pool).Setup(dbCtx); err != nil {
		return fmt.Errorf("ensure tables: %w", err)
	}

	storage := postgresql.NewCurrencyStorage(pool)
	syncRates := func(ctx context.Context) {
		resp, err := a.client.FetchAndSaveLatest(ctx, storage, cfg.Pivot, cfg.Symbols)
		if err != nil {
			log.WithError(err).Error("rates sync failed")
			return
		}
		log.WithFields(logrus.Fields{"base": resp.Base, "date": resp.Date, "rates": len(resp.Codes)}).Info("rates synced")
	}
	syncRates(ctx)

	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return fmt.Errorf("load location %s: %w", cfg.Location, err)
	}
	scheduler := cron.New(
		cron.WithLocation(loc),
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)),
	)

	g, gctx := errgroup.WithContext(ctx)

	if _, err := scheduler.AddFunc(cfg.CronSpec, func() { syncRates(gctx) }); err != nil {
		return fmt.Errorf("add cron func: %w", err)
	}

	audit := internal.NewStorageAuditLogger(postgresql.NewRequestLogStorage(pool))
	converter := internal.NewRateConverter(storage, cfg.Pivot)
	handler := ratesapi.New(converter, a.client, audit, log)

	mux := http.NewServeMux()
	handler.Register(mux)

	keys := internal.NewAPIKeyChecker(postgresql.NewAPIKeyStorage(pool), cfg.EncodingKey, nil)
	root := middleware.APIKeyAuth(keys)(mux)

	g.Go(func() error {
		return runCron(gctx, scheduler)
	})
	g.Go(func() error {
		return serveHTTP(gctx, log, ":"+cfg.HTTPPort, root)
	})

	log.Info("running, stop with Ctrl+C / SIGTERM")
	return g.Wait()
}

func runCron(ctx context.Context, c *cron.Cron) error {
	c.Start()
	defer func() {
		stopCtx := c.Stop()
		<-stopCtx.Done()
	}()

	<-ctx.Done()
	return nil
}

func serveHTTP(ctx context.Context, log logrus.FieldLogger, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	log.WithField("addr", addr).Info("http listening")
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
