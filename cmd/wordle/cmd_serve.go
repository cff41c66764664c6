package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bodul/wordle/internal/game"
	"github.com/bodul/wordle/internal/hint"
	"github.com/bodul/wordle/internal/seed"
	"github.com/bodul/wordle/internal/server"
	"github.com/bodul/wordle/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Runs the JSON API. When GCP_PROJECT_ID is set, GET /api/hint asks Gemini
for a clue. With --seed the bank is loaded at startup, and --watch reloads it
whenever the file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().Int("port", 0, "HTTP port (WORDLE_PORT)")
	cmd.Flags().String("seed", "", "YAML seed bank to load at startup (WORDLE_SEED_FILE)")
	cmd.Flags().Bool("watch", false, "Reload the seed bank when it changes (WORDLE_WATCH_SEED)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	shutdownTracing, err := telemetry.Setup(ctx, "wordle", a.cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			a.logger.Warn("otel shutdown", zap.Error(err))
		}
	}()

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	broadcaster := server.NewBroadcaster(a.logger)
	opts := []game.Option{game.WithPublisher(broadcaster)}

	if a.cfg.GCPProjectID != "" {
		gemini, err := hint.New(ctx, hint.Config{
			Project: a.cfg.GCPProjectID,
			Region:  a.cfg.GCPRegion,
			Model:   a.cfg.ClueModel,
		})
		if err != nil {
			return fmt.Errorf("init gemini: %w", err)
		}
		defer gemini.Close()
		opts = append(opts, game.WithClues(gemini))
		a.logger.Info("gemini clues enabled", zap.String("project", a.cfg.GCPProjectID))
	} else {
		a.logger.Info("GCP_PROJECT_ID not set, clues disabled")
	}

	svc := a.newService(store, opts...)

	if a.cfg.SeedFile != "" {
		if err := a.applySeed(ctx, svc); err != nil {
			return err
		}
	}

	srv := server.New(svc, broadcaster, server.Options{
		GuessRate: a.cfg.GuessRate,
		Location:  a.loc,
		Logger:    a.logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(a.cfg.Port),
		Handler:           otelhttp.NewHandler(srv, "wordle"),
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with the process context.
		BaseContext: func(net.Listener) context.Context { return gctx },
	}
	g.Go(func() error {
		a.logger.Info("server started", zap.String("addr", "http://localhost"+httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(sctx)
	})
	if a.cfg.WatchSeed {
		g.Go(func() error {
			return seed.Watch(gctx, a.cfg.SeedFile, func() {
				if err := a.applySeed(gctx, svc); err != nil {
					a.logger.Error("reload seed", zap.Error(err))
				}
			}, a.logger)
		})
	}
	return g.Wait()
}

func (a *app) applySeed(ctx context.Context, svc *game.Service) error {
	bank, err := seed.Load(a.cfg.SeedFile)
	if err != nil {
		return err
	}
	_, err = seed.Apply(ctx, bank, svc, a.loc, a.logger)
	return err
}
