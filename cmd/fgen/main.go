package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/fgen/cmd/fgen/commands"
	"github.com/teranos/fgen/config"
	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "fgen",
	Short: "fgen - scaffold UI component modules",
	Long: `fgen scaffolds a UI component module from a single name: the component,
its style, translation and test files, and a barrel that re-exports it.

Available commands:
  create  - Create a new module directory
  add     - Add module files to an existing directory
  plan    - Show what create or add would write
  history - List previous runs
  config  - Show, validate and initialize fgen.toml
  serve   - Expose create/add/plan as MCP tools over stdio
  version - Show version information

Examples:
  fgen create --name UserCard src/components
  fgen add -n "user card" --without test,translation
  fgen plan -n UserCard --format yaml
  fgen history --limit 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}

		if path, _ := cmd.Flags().GetString("config"); path != "" {
			config.SetConfigFile(path)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file that overrides every other source")

	rootCmd.AddCommand(commands.CreateCmd)
	rootCmd.AddCommand(commands.AddCmd)
	rootCmd.AddCommand(commands.PlanCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
