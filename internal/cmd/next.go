package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskstat/taskstat/internal/render"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next actionable phase and task",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := loadSpec("next")
		if err != nil {
			return err
		}
		defer spec.Logger.Close()

		r := render.New(spec.Config.UI.Theme, spec.Config.UI.Width)
		fmt.Print(r.Next(spec.Result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nextCmd)
}
