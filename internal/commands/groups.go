package commands

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adminlayers/gcadm/internal/output"
)

// NewGroupsCmd creates the groups command group.
func NewGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage groups and their membership",
	}

	cmd.AddCommand(
		newGroupsGetCmd(),
		newGroupsSearchCmd(),
		newGroupsListCmd(),
		newGroupsCreateCmd(),
		newGroupsUpdateCmd(),
		newGroupsDeleteCmd(),
		newGroupsMembersCmd(),
		newGroupsAddMembersCmd(),
		newGroupsRemoveMembersCmd(),
	)

	return cmd
}

func newGroupsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <group-id>",
		Short: "Get a group by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Groups().Get(cmd.Context(), args[0]))
		},
	}
}

func newGroupsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search groups by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			hits, err := a.Backend.Groups().Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRawList(hits)
		},
	}
}

func newGroupsListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Groups().ListPage(cmd.Context(), a.Flags.PageSize, page))
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number to fetch")
	return cmd
}

func newGroupsCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Groups().Create(cmd.Context(), args[0], description))
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Group description")
	return cmd
}

func newGroupsUpdateCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update <group-id>",
		Short: "Update group fields",
		Long: "Update mutable group fields. The current version is fetched first so " +
			"the write carries the optimistic-concurrency version the API requires.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			fields, err := parseSetFlags(sets)
			if err != nil {
				return err
			}

			version, err := groupVersion(cmd, args[0])
			if err != nil {
				return err
			}
			fields["version"] = version

			return printResult(a.Backend.Groups().Update(cmd.Context(), args[0], fields))
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field to update as key=value (repeatable)")
	return cmd
}

func newGroupsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <group-id>",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Groups().Delete(cmd.Context(), args[0]))
		},
	}
}

func newGroupsMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <group-id>",
		Short: "List group members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			members, err := a.Backend.Groups().GetMembers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRawList(members)
		},
	}
}

func newGroupsAddMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-members <group-id> <user-id>...",
		Short: "Add users to a group",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}

			version, err := groupVersion(cmd, args[0])
			if err != nil {
				return err
			}
			return printResult(a.Backend.Groups().AddMembers(cmd.Context(), args[0], args[1:], version))
		},
	}
}

func newGroupsRemoveMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-members <group-id> <user-id>...",
		Short: "Remove users from a group",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Groups().RemoveMembers(cmd.Context(), args[0], args[1:]))
		},
	}
}

// groupVersion fetches the group's current optimistic-concurrency version.
func groupVersion(cmd *cobra.Command, groupID string) (int, error) {
	a, err := backendApp(cmd)
	if err != nil {
		return 0, err
	}

	res := a.Backend.Groups().Get(cmd.Context(), groupID)
	if !res.Success {
		return 0, resultError(res)
	}

	var group struct {
		Version json.Number `json:"version"`
	}
	if err := json.Unmarshal(res.Data, &group); err != nil {
		return 0, output.ErrAPI(res.StatusCode, "group record has no version")
	}
	version, err := strconv.Atoi(group.Version.String())
	if err != nil {
		return 0, output.ErrAPI(res.StatusCode, "group record has no version")
	}
	return version, nil
}
