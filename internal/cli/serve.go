package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	transport "quest-client/internal/transport/http"
)

// NewServeCmd starts the websocket bridge a UI drives the client through.
func NewServeCmd(configPath, port *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the UI bridge (websocket + JSON status)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
	cmd.Flags().StringVar(port, "port", os.Getenv("PORT"), "port to listen on")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	rt, err := openRuntime(ctx, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()
	logger := rt.logger

	finalPort := portFlag
	if finalPort == "" {
		finalPort = rt.cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}
	if err := rt.cfg.RequireVerifier(); err != nil {
		logger.Warn("submit and prove will fail until a verifier is configured", "error", err)
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(rt.service, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket connections outlive a single write window
	}

	go func() {
		logger.Info("starting quest client bridge", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
