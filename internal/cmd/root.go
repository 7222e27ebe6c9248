// Package cmd implements the taskstat command-line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskstat/taskstat/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "taskstat",
	Short: "Progress and availability for phased task checklists",
	Long: `Taskstat reads a phased Markdown task checklist (tasks.md) and reports
progress per phase, the next actionable task, and which phases are
currently unblocked according to the document's dependency section.

The spec folder is discovered from the current git branch when
possible, falling back to the most recently modified folder under the
specs directory.`,
	// Bare "taskstat" behaves like "taskstat status".
	RunE: runStatus,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/taskstat/config.yaml)")
	rootCmd.PersistentFlags().StringP("spec", "s", "", "spec folder to read instead of auto-detecting")
	rootCmd.PersistentFlags().String("theme", "", "color theme (default, mono)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("spec", rootCmd.PersistentFlags().Lookup("spec"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/taskstat")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TASKSTAT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TASKSTAT_UI_THEME for ui.theme
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The theme flag overrides the config file when set
	if theme, _ := rootCmd.PersistentFlags().GetString("theme"); theme != "" {
		viper.Set("ui.theme", theme)
	}

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
