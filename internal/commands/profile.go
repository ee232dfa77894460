package commands

import (
	"github.com/spf13/cobra"

	"github.com/adminlayers/gcadm/internal/output"
	"github.com/adminlayers/gcadm/internal/secretstore"
)

// NewProfileCmd creates the profile command group. Profiles are local
// operator records kept in the encrypted store, not Genesys users.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage local operator profiles",
	}

	cmd.AddCommand(
		newProfileListCmd(),
		newProfileCreateCmd(),
		newProfileUpdateCmd(),
		newProfileDeleteCmd(),
		newProfileUseCmd(),
		newProfileShowCmd(),
	)

	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}
			return printJSON(a.Secrets.Profiles())
		},
	}
}

func newProfileCreateCmd() *cobra.Command {
	var email, company string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}
			if email == "" {
				return output.ErrUsage("--email is required")
			}

			p, ok := a.Secrets.SaveProfile(secretstore.Profile{
				Name:    args[0],
				Email:   email,
				Company: company,
			})
			if !ok {
				return output.ErrStorage("could not store profile")
			}
			return printJSON(p)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Profile email")
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var name, email, company string

	cmd := &cobra.Command{
		Use:   "update <profile-id>",
		Short: "Update a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}

			var existing *secretstore.Profile
			for _, p := range a.Secrets.Profiles() {
				if p.ID == args[0] {
					existing = &p
					break
				}
			}
			if existing == nil {
				return output.ErrNotFound("profile", args[0])
			}

			if name != "" {
				existing.Name = name
			}
			if email != "" {
				existing.Email = email
			}
			if company != "" {
				existing.Company = company
			}

			p, ok := a.Secrets.SaveProfile(*existing)
			if !ok {
				return output.ErrStorage("could not store profile")
			}
			return printJSON(p)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&company, "company", "", "New company")
	return cmd
}

func newProfileDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <profile-id>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}
			if !a.Secrets.DeleteProfile(args[0]) {
				return output.ErrNotFound("profile", args[0])
			}
			return printJSON(map[string]string{"status": "deleted", "id": args[0]})
		},
	}
}

func newProfileUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <profile-id>",
		Short: "Set the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}
			if !a.Secrets.SetActiveProfile(args[0]) {
				return output.ErrNotFound("profile", args[0])
			}
			return printJSON(map[string]string{"status": "active", "id": args[0]})
		},
	}
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}
			p, ok := a.Secrets.ActiveProfile()
			if !ok {
				return output.ErrNotFound("active profile", "none set")
			}
			return printJSON(p)
		},
	}
}
