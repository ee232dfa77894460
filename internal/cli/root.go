// Package cli wires the root cobra command and builds the application
// context every subcommand runs against.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/adminlayers/gcadm/internal/api"
	"github.com/adminlayers/gcadm/internal/appctx"
	"github.com/adminlayers/gcadm/internal/auth"
	"github.com/adminlayers/gcadm/internal/backend"
	"github.com/adminlayers/gcadm/internal/commands"
	"github.com/adminlayers/gcadm/internal/config"
	"github.com/adminlayers/gcadm/internal/output"
	"github.com/adminlayers/gcadm/internal/secretstore"
	"github.com/adminlayers/gcadm/internal/simulator"
	"github.com/adminlayers/gcadm/internal/version"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	var flags appctx.GlobalFlags

	cmd := &cobra.Command{
		Use:           "gcadm",
		Short:         "Admin CLI for Genesys Cloud",
		Long:          "gcadm manages Genesys Cloud users, groups, queues, and routing skills.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			log := newLogger(flags.Verbose)

			secrets, err := secretstore.New(secretstore.Options{Logger: log})
			if err != nil {
				return fmt.Errorf("initializing secret store: %w", err)
			}

			app := &appctx.App{
				Secrets: secrets,
				Log:     log,
				Flags:   flags,
			}

			if flags.Demo {
				app.Backend = simulator.New()
			} else if cfg := discoverConfig(flags, secrets); cfg != nil {
				app.Config = cfg
				app.Auth = auth.NewManager(cfg, log)
				app.Backend = backend.NewLive(api.NewClient(cfg.APIURL(), app.Auth, log))
			}

			if app.Backend != nil {
				if missing := backend.Validate(app.Backend); len(missing) > 0 {
					fmt.Fprintf(os.Stderr, "warning: backend is missing capabilities: %s\n",
						strings.Join(missing, ", "))
				}
			}

			cmd.SetContext(appctx.WithApp(cmd.Context(), app))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.Demo, "demo", false, "Run against the built-in simulator")
	cmd.PersistentFlags().StringVar(&flags.Region, "region", "", "Region name or API domain override")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Config file path")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().IntVar(&flags.PageSize, "page-size", 25, "Page size for list commands")

	cmd.AddCommand(
		commands.NewAuthCmd(),
		commands.NewUsersCmd(),
		commands.NewGroupsCmd(),
		commands.NewQueuesCmd(),
		commands.NewSkillsCmd(),
		commands.NewRoutingCmd(),
		commands.NewConversationsCmd(),
		commands.NewProfileCmd(),
		commands.NewStorageCmd(),
		commands.NewConfigCmd(),
		commands.NewDoctorCmd(),
		newVersionCmd(),
	)

	return cmd
}

// discoverConfig resolves credentials: environment, config file, then the
// encrypted store. A region flag overrides whatever source won.
func discoverConfig(flags appctx.GlobalFlags, secrets *secretstore.Store) *config.Config {
	cfg := config.Load(flags.ConfigPath)
	if cfg == nil {
		if cred, ok := secrets.Credential(); ok {
			cfg = config.New(cred.ClientID, cred.ClientSecret, cred.Region)
			cfg.Source = config.SourceStored
		}
	}
	if cfg == nil {
		return nil
	}
	if flags.Region != "" {
		cfg.Region = config.ResolveRegion(flags.Region)
	}
	return cfg
}

// newLogger builds a stderr logger, debug-level when verbose.
func newLogger(verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

// Execute runs the root command and exits with the code the error
// taxonomy assigns.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		structured := output.AsError(err)
		fmt.Fprintf(os.Stderr, "error: %s\n", structured.Message)
		if structured.Hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", structured.Hint)
		}
		os.Exit(structured.ExitCode())
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Full())
		},
	}
}
