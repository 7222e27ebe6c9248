package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskstat/taskstat/internal/render"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Show declared phase dependencies and parallel opportunities",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := loadSpec("deps")
		if err != nil {
			return err
		}
		defer spec.Logger.Close()

		r := render.New(spec.Config.UI.Theme, spec.Config.UI.Width)
		fmt.Print(r.Deps(spec.Result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
