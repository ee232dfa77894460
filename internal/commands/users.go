package commands

import (
	"github.com/spf13/cobra"
)

// NewUsersCmd creates the users command group.
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Look up and manage users",
	}

	cmd.AddCommand(
		newUsersGetCmd(),
		newUsersSearchCmd(),
		newUsersListCmd(),
		newUsersUpdateCmd(),
		newUsersQueuesCmd(),
		newUsersGroupsCmd(),
		newUsersEmailCmd(),
	)

	return cmd
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Get a user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Users().Get(cmd.Context(), args[0]))
		},
	}
}

func newUsersSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search users by name or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			hits, err := a.Backend.Users().Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRawList(hits)
		},
	}
}

func newUsersListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Users().ListPage(cmd.Context(), a.Flags.PageSize, page))
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number to fetch")
	return cmd
}

func newUsersUpdateCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update user fields",
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
			return printResult(a.Backend.Users().Update(cmd.Context(), args[0], fields))
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field to update as key=value (repeatable)")
	return cmd
}

func newUsersQueuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "queues <user-id>",
		Short: "List the queues a user belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			queues, err := a.Backend.Users().GetQueues(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRawList(queues)
		},
	}
}

func newUsersGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups <user-id>",
		Short: "Show a user with group membership expanded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Users().GetGroups(cmd.Context(), args[0]))
		},
	}
}

func newUsersEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email <address>",
		Short: "Find a user by exact email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Users().SearchByEmail(cmd.Context(), args[0]))
		},
	}
}
