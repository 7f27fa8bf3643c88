package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"harvestsim/internal/config"
	"harvestsim/internal/live"
	"harvestsim/internal/popdyn"
	"harvestsim/internal/sim"
)

func newServeCmd() *cobra.Command {
	var (
		listen string
		tickHz float64
		mode   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live monitor over websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			if cmd.Flags().Changed("tick-hz") {
				cfg.TickHz = tickHz
			}

			startMode, err := popdyn.ParseMode(mode)
			if err != nil {
				return err
			}

			runner := sim.NewRunner(popdyn.New(cfg.Biology))
			loop, err := live.NewLoop(runner, startMode, cfg.TickHz)
			if err != nil {
				return err
			}

			logger := log.New(os.Stderr, "harvestsim ", log.LstdFlags)
			server := live.NewServer(loop, logger)

			mux := http.NewServeMux()
			mux.Handle("/ws", server.WSHandler())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go loop.Run(ctx)

			httpSrv := &http.Server{Addr: cfg.Listen, Handler: mux}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()

			logger.Printf("live monitor on ws://%s/ws (tick %.2g Hz, mode %s)", cfg.Listen, cfg.TickHz, startMode)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().Float64Var(&tickHz, "tick-hz", 0, "steps per second while running (overrides config)")
	cmd.Flags().StringVar(&mode, "mode", "selective", "initial harvest mode")
	return cmd
}
