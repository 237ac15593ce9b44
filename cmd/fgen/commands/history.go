package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/fgen/config"
	"github.com/teranos/fgen/display"
	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/internal/app"
	"github.com/teranos/fgen/journal"
)

// HistoryCmd represents the history command
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous runs",
	Long: `List the runs recorded in the journal, newest first. Dry runs and
runs that were cancelled before a module name was known are not recorded.`,
	Example: `  fgen history --limit 5
  fgen history show 3xYk9aQ... --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := display.FormatFromCommand(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		j, err := openHistory()
		if err != nil {
			return err
		}
		defer j.Close()

		runs, err := j.List(contextOrBackground(cmd), limit)
		if err != nil {
			return err
		}

		switch format {
		case display.FormatText:
			return printRuns(cmd.OutOrStdout(), runs)
		case display.FormatTOML:
			return display.Write(cmd.OutOrStdout(), runList{Runs: runs}, format)
		default:
			if runs == nil {
				runs = []journal.Run{}
			}
			return display.Write(cmd.OutOrStdout(), runs, format)
		}
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run and the files it touched",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := display.FormatFromCommand(cmd)
		if err != nil {
			return err
		}

		j, err := openHistory()
		if err != nil {
			return err
		}
		defer j.Close()

		run, err := j.Get(contextOrBackground(cmd), args[0])
		if errors.Is(err, journal.ErrNotFound) {
			return errors.WithHint(err, "list run IDs with `fgen history`")
		}
		if err != nil {
			return err
		}

		if format == display.FormatText {
			printRun(cmd.OutOrStdout(), run)
			return nil
		}
		return display.Write(cmd.OutOrStdout(), run, format)
	},
}

// runList gives TOML a table to hang the run array on.
type runList struct {
	Runs []journal.Run `json:"runs" yaml:"runs" toml:"runs"`
}

func init() {
	HistoryCmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 for all)")
	HistoryCmd.PersistentFlags().String("format", "text", "Output format: text, json, yaml, toml")
	HistoryCmd.AddCommand(historyShowCmd)
}

func openHistory() (*journal.Journal, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	j, err := app.OpenJournal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open journal")
	}
	if j == nil {
		return nil, errors.WithHint(
			errors.NewConfigError("the journal is disabled"),
			"set journal.enabled = true in fgen.toml",
		)
	}
	return j, nil
}
