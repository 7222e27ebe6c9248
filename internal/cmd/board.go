package cmd

import (
	"github.com/spf13/cobra"

	"github.com/taskstat/taskstat/internal/board"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Watch the task document and re-render on change",
	Long: `Open a live view of the current spec's task document. The view
refreshes automatically when the file is written and never modifies
it. Press q to quit, r to force a refresh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := loadSpec("board")
		if err != nil {
			return err
		}
		defer spec.Logger.Close()

		return board.Run(spec.TasksPath, spec.Result.SpecFolder, spec.Config.UI.Theme, spec.Logger)
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
