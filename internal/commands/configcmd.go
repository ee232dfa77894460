package commands

import (
	"github.com/spf13/cobra"

	"github.com/adminlayers/gcadm/internal/config"
	"github.com/adminlayers/gcadm/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and write client configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigSetCmd(),
		newConfigRegionsCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the discovered configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}
			if a.Config == nil {
				return printJSON(map[string]any{"configured": false})
			}
			// The secret never leaves the process.
			return printJSON(map[string]any{
				"configured": true,
				"client_id":  a.Config.ClientID,
				"region":     a.Config.Region,
				"source":     string(a.Config.Source),
			})
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var clientID, clientSecret, region, path string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Write credentials to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" || clientSecret == "" {
				return output.ErrUsage("both --client-id and --client-secret are required")
			}

			cfg := config.New(clientID, clientSecret, config.ResolveRegion(region))
			if err := config.Save(cfg, path); err != nil {
				return output.ErrStorage("writing config: " + err.Error())
			}

			target := path
			if target == "" {
				target = config.DefaultPath()
			}
			return printJSON(map[string]string{"status": "saved", "path": target})
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth client secret")
	cmd.Flags().StringVar(&region, "region", "", "Region name or API domain")
	cmd.Flags().StringVar(&path, "path", "", "Config file path (defaults to the standard location)")
	return cmd
}

func newConfigRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List known region domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(config.Regions())
		},
	}
}
