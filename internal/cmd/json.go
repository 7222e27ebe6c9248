package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Print the full parse result as JSON",
	Long: `Print the complete parse result as JSON on stdout: phases, tasks,
dependency records, totals, and the availability view. The output is a
direct serialization of the in-memory model with no extra schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := loadSpec("json")
		if err != nil {
			return err
		}
		defer spec.Logger.Close()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(spec.Result); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jsonCmd)
}
