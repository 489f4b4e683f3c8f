package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/homegarden/gardenpages/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
)

var failuresServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded copy failures over a read-only HTTP API",
	Long:  `Starts an HTTP server exposing GET /api/copy-failures and GET /api/copy-failures/{id} for dashboards and support tooling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := requireTelemetry()
		if err != nil {
			return err
		}
		defer closeStore()

		srv := server.New(server.Config{
			Port:     servePort,
			AllowAll: serveAllowAll,
		}, store, logger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(cmd.ErrOrStderr(), "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(cmd.ErrOrStderr(), "gardenpages %s telemetry server starting on port %d\n", Version, servePort)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	failuresServeCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	failuresServeCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "Allow all CORS origins")
	failuresCmd.AddCommand(failuresServeCmd)
}
