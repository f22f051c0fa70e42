// @title         Surveyflow API
// @version       0.1.0
// @description   Survey response ingestion with NPS and satisfaction insights

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"surveyflow/internal/core/version"
	"surveyflow/internal/modkit"
	"surveyflow/internal/modkit/repokit"
	"surveyflow/internal/platform/config"
	"surveyflow/internal/platform/logger"
	phttp "surveyflow/internal/platform/net/http"
	"surveyflow/internal/platform/store"

	"surveyflow/internal/services/api"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")      // CORE_API_PORT, CORE_API_SWAGGER, ...
	pgCfg := root.Prefix("SERVICE_PGSQL_") // SERVICE_PGSQL_DBURL, ...

	// bring up logging early
	l := logger.Get()
	l.Info().Str("build", version.Info().String()).Msg("starting")

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: version.Service,
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayIntMin("MAX_CONNS", 4, 1)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*logger.Named("store")),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	srv := phttp.NewServer(apiCfg)

	mods, err := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	startCtx, cancelStart := context.WithTimeout(ctx, time.Minute)
	err = modkit.StartAll(startCtx, mods...)
	cancelStart()
	if err != nil {
		l.Panic().Err(err).Msg("module start failed")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	for _, task := range modkit.TasksOf(mods...) {
		g.Go(func() error {
			tl := logger.Named(task.Name)
			tl.Info().Msg("task started")
			err := task.Run(gctx)
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			if err != nil {
				tl.Error().Err(err).Msg("task stopped")
				return err
			}
			tl.Info().Msg("task stopped")
			return nil
		})
	}

	// reject new submissions as soon as shutdown begins
	go func() {
		<-gctx.Done()
		modkit.StopAll(mods...)
	}()

	if err := g.Wait(); err != nil {
		l.Error().Err(err).Msg("shutdown with error")
		return
	}
	l.Info().Msg("stopped")
}
