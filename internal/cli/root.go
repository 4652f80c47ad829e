package cli

import (
	"context"

	"winelink/internal/config"
	"winelink/internal/logger"

	"github.com/spf13/cobra"
)

// options is shared by every subcommand; cfg is filled in PersistentPreRunE.
type options struct {
	configPath string
	readOnly   bool
	cfg        *config.Config
}

func (o *options) load() error {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	if o.readOnly {
		cfg.Database.ReadOnly = true
	}

	logger.Init(cfg.Server.Env)
	o.cfg = cfg
	return nil
}

// RootCommand creates the winelink command tree.
func RootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "winelink",
		Short:        "Wine catalog server and asset tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to the YAML config file (default $CONFIG_PATH or config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.readOnly, "read-only", false, "Open the store read-only and disable editing")

	rootCmd.AddCommand(
		serveCommand(opts),
		scanCommand(opts),
		seedCommand(opts),
		arrivalCommand(opts),
	)
	return rootCmd
}

// Execute runs the command tree; a bare invocation serves HTTP.
func Execute(ctx context.Context, args []string) error {
	rootCmd := RootCommand()
	if len(args) == 0 {
		args = []string{"serve"}
	}
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
