package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chris-regnier/mindary/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the diary API over HTTP",
	Long: `Serve GET /mindary?date=YYYY-MM-DD and the record and memo endpoints from
the local store. Prometheus metrics are exposed on /metrics.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{logsToStderr: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = appConfig.ListenAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("storage", appConfig.Storage),
			zap.String("data_dir", appConfig.DataDir))
		return server.New(s, logger).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
