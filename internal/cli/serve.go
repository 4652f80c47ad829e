package cli

import (
	"os"
	"os/signal"
	"syscall"

	"winelink/internal/app"

	"github.com/spf13/cobra"
)

func serveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, opts.cfg)
		},
	}
}
