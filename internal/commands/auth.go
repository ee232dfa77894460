package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adminlayers/gcadm/internal/auth"
	"github.com/adminlayers/gcadm/internal/config"
	"github.com/adminlayers/gcadm/internal/output"
	"github.com/adminlayers/gcadm/internal/secretstore"
)

// NewAuthCmd creates the auth command group.
func NewAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long:  "Authenticate against Genesys Cloud with OAuth client credentials.",
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthStatusCmd(),
		newAuthLogoutCmd(),
	)

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var clientID, clientSecret, region string
	var save bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with client credentials",
		Long: "Authenticate using OAuth client credentials. Credentials come from " +
			"flags, the environment, the config file, or the encrypted store, in that order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}

			cfg := a.Config
			if clientID != "" || clientSecret != "" {
				if clientID == "" || clientSecret == "" {
					return output.ErrUsage("both --client-id and --client-secret are required")
				}
				cfg = config.New(clientID, clientSecret, config.ResolveRegion(region))
			}
			if cfg == nil {
				return output.ErrUsageHint("no credentials found",
					"pass --client-id/--client-secret or set GENESYS_CLIENT_ID and GENESYS_CLIENT_SECRET")
			}

			mgr := a.Auth
			if mgr == nil || cfg != a.Config {
				mgr = auth.NewManager(cfg, a.Log)
			}

			ok, msg := mgr.Authenticate(cmd.Context())
			if !ok {
				return output.ErrAuth(msg)
			}

			if save {
				if !a.Secrets.SaveCredential(cfg.ClientID, cfg.ClientSecret, cfg.Region) {
					return output.ErrStorage("could not store credentials")
				}
				if !a.Secrets.IsPersistent() {
					fmt.Println("warning: storage is not persistent, credentials will be lost on exit")
					fmt.Printf("         set %s or add a keyring entry to persist them\n",
						secretstore.EnvPassphrase)
				}
			}

			expiry := "unknown"
			if exp, held := mgr.ExpiresAt(); held {
				expiry = exp.UTC().Format("2006-01-02T15:04:05Z")
			}
			return printJSON(map[string]any{
				"status":     "authenticated",
				"region":     cfg.Region,
				"expires_at": expiry,
				"saved":      save,
			})
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth client secret")
	cmd.Flags().StringVar(&region, "region", "", "Region name or API domain")
	cmd.Flags().BoolVar(&save, "save", false, "Store credentials in the encrypted store")

	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}

			if a.Flags.Demo {
				return printJSON(map[string]any{"mode": "demo", "authenticated": true})
			}
			if a.Config == nil || a.Auth == nil {
				return printJSON(map[string]any{"authenticated": false})
			}

			status := map[string]any{
				"authenticated": a.Auth.RefreshIfNeeded(cmd.Context()),
				"region":        a.Config.Region,
				"source":        string(a.Config.Source),
			}
			if exp, held := a.Auth.ExpiresAt(); held {
				status["expires_at"] = exp.UTC().Format("2006-01-02T15:04:05Z")
			}
			return printJSON(status)
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}

			if !a.Secrets.DeleteCredential() {
				return output.ErrStorage("could not remove stored credentials")
			}
			return printJSON(map[string]string{"status": "logged_out"})
		},
	}
}
