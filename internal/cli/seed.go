package cli

import (
	"errors"
	"fmt"

	"winelink/internal/database"

	"github.com/spf13/cobra"
)

func seedCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter wine list into an empty table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Database.ReadOnly {
				return errors.New("cannot seed a read-only store")
			}

			db, err := database.Open(opts.cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			n, err := database.SeedIfEmpty(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d wines\n", n)
			return nil
		},
	}
}
