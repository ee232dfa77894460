package commands

import (
	"github.com/spf13/cobra"
)

// NewQueuesCmd creates the queues command group.
func NewQueuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queues",
		Short: "Manage routing queues",
	}

	cmd.AddCommand(
		newQueuesGetCmd(),
		newQueuesSearchCmd(),
		newQueuesListCmd(),
		newQueuesCreateCmd(),
		newQueuesUpdateCmd(),
		newQueuesDeleteCmd(),
		newQueuesMembersCmd(),
		newQueuesAddMembersCmd(),
		newQueuesRemoveMembersCmd(),
	)

	return cmd
}

func newQueuesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <queue-id>",
		Short: "Get a queue by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Queues().Get(cmd.Context(), args[0]))
		},
	}
}

func newQueuesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search queues by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			hits, err := a.Backend.Queues().Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRawList(hits)
		},
	}
}

func newQueuesListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queues one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Queues().ListPage(cmd.Context(), a.Flags.PageSize, page))
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number to fetch")
	return cmd
}

func newQueuesCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Queues().Create(cmd.Context(), args[0], description))
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Queue description")
	return cmd
}

func newQueuesUpdateCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update <queue-id>",
		Short: "Update queue fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			fields, err := parseSetFlags(sets)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Queues().Update(cmd.Context(), args[0], fields))
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field to update as key=value (repeatable)")
	return cmd
}

func newQueuesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <queue-id>",
		Short: "Delete a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Queues().Delete(cmd.Context(), args[0]))
		},
	}
}

func newQueuesMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <queue-id>",
		Short: "List queue members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			members, err := a.Backend.Queues().GetMembers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRawList(members)
		},
	}
}

func newQueuesAddMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-members <queue-id> <user-id>...",
		Short: "Add users to a queue",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Queues().AddMembers(cmd.Context(), args[0], args[1:]))
		},
	}
}

func newQueuesRemoveMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-members <queue-id> <user-id>...",
		Short: "Remove users from a queue",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Queues().RemoveMembers(cmd.Context(), args[0], args[1:]))
		},
	}
}
