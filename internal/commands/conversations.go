package commands

import (
	"github.com/spf13/cobra"
)

// NewConversationsCmd creates the conversations command group.
func NewConversationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversations",
		Short: "Inspect live conversations and analytics",
	}

	var interval string
	analytics := &cobra.Command{
		Use:   "analytics",
		Short: "Run a conversation details analytics query",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Conversations().AnalyticsQuery(cmd.Context(), interval))
		},
	}
	analytics.Flags().StringVar(&interval, "interval", "",
		"ISO-8601 interval, e.g. 2026-08-01T00:00:00Z/2026-08-02T00:00:00Z")
	_ = analytics.MarkFlagRequired("interval")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "active",
			Short: "List active conversations",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := backendApp(cmd)
				if err != nil {
					return err
				}
				return printResult(a.Backend.Conversations().Active(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "get <conversation-id>",
			Short: "Get a conversation by ID",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := backendApp(cmd)
				if err != nil {
					return err
				}
				return printResult(a.Backend.Conversations().Get(cmd.Context(), args[0]))
			},
		},
		&cobra.Command{
			Use:   "details <conversation-id>",
			Short: "Get analytics details for a conversation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := backendApp(cmd)
				if err != nil {
					return err
				}
				return printResult(a.Backend.Conversations().Details(cmd.Context(), args[0]))
			},
		},
		&cobra.Command{
			Use:   "disconnect <conversation-id>",
			Short: "Force-terminate a conversation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := backendApp(cmd)
				if err != nil {
					return err
				}
				return printResult(a.Backend.Conversations().Disconnect(cmd.Context(), args[0]))
			},
		},
		analytics,
	)

	return cmd
}
