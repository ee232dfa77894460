package commands

import (
	"github.com/spf13/cobra"
)

// NewSkillsCmd creates the skills command group.
func NewSkillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Manage routing skills and user skill assignments",
	}

	cmd.AddCommand(
		newSkillsListCmd(),
		newSkillsGetCmd(),
		newSkillsCreateCmd(),
		newSkillsUpdateCmd(),
		newSkillsDeleteCmd(),
		newSkillsUserCmd(),
		newSkillsAssignCmd(),
		newSkillsUnassignCmd(),
	)

	return cmd
}

func newSkillsListCmd() *cobra.Command {
	var page int
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routing skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			if all {
				skills, err := a.Backend.Routing().Skills(cmd.Context())
				if err != nil {
					return err
				}
				return printRawList(skills)
			}
			return printResult(a.Backend.Routing().ListSkillsPage(cmd.Context(), a.Flags.PageSize, page))
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number to fetch")
	cmd.Flags().BoolVar(&all, "all", false, "Walk every page and print all skills")
	return cmd
}

func newSkillsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <skill-id>",
		Short: "Get a skill by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Routing().Skill(cmd.Context(), args[0]))
		},
	}
}

func newSkillsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a routing skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Routing().CreateSkill(cmd.Context(), args[0]))
		},
	}
}

func newSkillsUpdateCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update <skill-id>",
		Short: "Update skill fields",
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
			return printResult(a.Backend.Routing().UpdateSkill(cmd.Context(), args[0], fields))
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field to update as key=value (repeatable)")
	return cmd
}

func newSkillsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <skill-id>",
		Short: "Delete a routing skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Routing().DeleteSkill(cmd.Context(), args[0]))
		},
	}
}

func newSkillsUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user <user-id>",
		Short: "List a user's skill assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Routing().UserSkills(cmd.Context(), args[0]))
		},
	}
}

func newSkillsAssignCmd() *cobra.Command {
	var proficiency float64

	cmd := &cobra.Command{
		Use:   "assign <user-id> <skill-id>",
		Short: "Assign a skill to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Routing().AddUserSkill(cmd.Context(), args[0], args[1], proficiency))
		},
	}

	cmd.Flags().Float64Var(&proficiency, "proficiency", 1.0, "Proficiency rating (0-5)")
	return cmd
}

func newSkillsUnassignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <user-id> <skill-id>",
		Short: "Remove a skill from a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}
			return printResult(a.Backend.Routing().RemoveUserSkill(cmd.Context(), args[0], args[1]))
		},
	}
}

// NewRoutingCmd creates the routing command group for languages and
// wrap-up codes.
func NewRoutingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routing",
		Short: "Inspect routing languages and wrap-up codes",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "languages",
			Short: "List routing languages",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := backendApp(cmd)
				if err != nil {
					return err
				}
				langs, err := a.Backend.Routing().Languages(cmd.Context())
				if err != nil {
					return err
				}
				return printRawList(langs)
			},
		},
		&cobra.Command{
			Use:   "wrapup-codes",
			Short: "List wrap-up codes",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := backendApp(cmd)
				if err != nil {
					return err
				}
				codes, err := a.Backend.Routing().WrapupCodes(cmd.Context())
				if err != nil {
					return err
				}
				return printRawList(codes)
			},
		},
	)

	return cmd
}
