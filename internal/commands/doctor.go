package commands

import (
	"github.com/spf13/cobra"

	"github.com/adminlayers/gcadm/internal/diagnostics"
	"github.com/adminlayers/gcadm/internal/output"
)

// NewDoctorCmd creates the doctor command.
func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run backend diagnostics",
		Long: "Validate the backend's capability surface and exercise each resource " +
			"with a live read, then print the full report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := backendApp(cmd)
			if err != nil {
				return err
			}

			report := diagnostics.Run(cmd.Context(), a.Backend, a.Log)
			if err := printJSON(report); err != nil {
				return err
			}

			if !report.AllOK() {
				_, failed, _ := report.Summary()
				if failed > 0 {
					return output.ErrAPI(0, "diagnostics reported failures")
				}
				return output.ErrAPI(0, "backend is missing capabilities")
			}
			return nil
		},
	}
}
