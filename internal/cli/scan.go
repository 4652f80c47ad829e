package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"winelink/internal/app"
	"winelink/internal/database"
	"winelink/internal/services"

	"github.com/spf13/cobra"
)

var errScanFailed = errors.New("reconciliation scan did not complete")

func scanCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Compare the wine table with the description and bottle files on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q: use text or json", format)
			}

			db, err := database.Open(opts.cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			locator, err := app.NewLocator(opts.cfg)
			if err != nil {
				return err
			}
			svc := app.InitializeServices(opts.cfg, locator)
			report := svc.ReconcileService.Scan(cmd.Context(), db)

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(report)
			} else {
				err = services.WriteReportText(out, report)
			}
			if err != nil {
				return err
			}

			if !report.OK {
				return errScanFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}
