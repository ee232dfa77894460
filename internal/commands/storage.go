package commands

import (
	"github.com/spf13/cobra"
)

// NewStorageCmd creates the storage command group.
func NewStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect the encrypted secret store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show storage backend and key source",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}
			return printJSON(a.Secrets.Info())
		},
	})

	return cmd
}
