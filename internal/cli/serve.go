package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/logging"
	"github.com/jmylchreest/oltre/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live preview server",
		Long: `Serve a preview page, JSON endpoints for palette, contrast and scale
calculations, and the current tokens.css. When a config file is in use it is
watched, and connected previews receive new CSS over a WebSocket whenever it
changes.`,
		Example: `  oltre serve
  oltre serve --listen :8080 -p nature`,
		Args: cobra.NoArgs,
	}
	ov := bindOverrides(cmd)
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on (default: configured listen_addr)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := a.loadConfig()
		if err != nil {
			return err
		}
		if err := ov.apply(cfg); err != nil {
			return err
		}
		if listen == "" {
			listen = cfg.ListenAddr
		}

		srv, err := server.New(cfg, server.Options{
			ConfigPath: cfg.Source,
			Prepare:    ov.apply,
			Logger:     logging.Component(a.logger, "server"),
		})
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Start(ctx, listen)
	}

	return cmd
}
