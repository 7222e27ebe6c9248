package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskstat/taskstat/internal/render"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show phase-by-phase progress for the current spec",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	spec, err := loadSpec("status")
	if err != nil {
		return err
	}
	defer spec.Logger.Close()

	r := render.New(spec.Config.UI.Theme, spec.Config.UI.Width)
	fmt.Print(r.Status(spec.Result))
	return nil
}
