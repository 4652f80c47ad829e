package cli

import (
	"fmt"

	"winelink/internal/app"
	"winelink/internal/services/dto"
	"winelink/internal/storage"

	"github.com/spf13/cobra"
)

func arrivalCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "arrival [dir]",
		Short: "Import PDF and WEBP description cards from an intake folder",
		Long: `Copy every .pdf and .webp file in dir into the description directories
under a slugged name. Files whose target name already exists are left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := storage.NewLocalStorage(storage.Config{BasePath: args[0]})
			if err != nil {
				return err
			}

			locator, err := app.NewLocator(opts.cfg)
			if err != nil {
				return err
			}
			svc := app.InitializeServices(opts.cfg, locator)

			results, err := svc.ArrivalService.Import(cmd.Context(), src)

			out := cmd.OutOrStdout()
			imported := 0
			for _, r := range results {
				switch r.Status {
				case dto.ArrivalImported:
					imported++
					fmt.Fprintf(out, "imported  %s -> %s\n", r.Source, r.Target)
				case dto.ArrivalExists:
					fmt.Fprintf(out, "exists    %s (%s)\n", r.Source, r.Target)
				default:
					fmt.Fprintf(out, "skipped   %s\n", r.Source)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d of %d files imported\n", imported, len(results))
			return nil
		},
	}
}
