package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/fgen/engine"
	"github.com/teranos/fgen/journal"
)

// printResult renders a run for a terminal.
func printResult(w io.Writer, res *engine.Result) {
	if res == nil {
		return
	}

	if res.DryRun {
		fmt.Fprint(w, pterm.Warning.Sprintfln("DRY RUN: nothing was written"))
	}
	fmt.Fprint(w, pterm.Info.Sprintfln("%s %s in %s", res.Mode, res.Module, res.Directory))

	for i, level := range res.Levels {
		fmt.Fprintf(w, "  level %d: %s\n", i, strings.Join(level, ", "))
	}

	var written int
	for _, f := range res.Files {
		fmt.Fprintf(w, "  %-7s %-12s %s\n", f.Action, f.Node, f.Path)
		if f.Action != engine.ActionSkip {
			written++
		}
	}

	if res.DryRun {
		return
	}
	fmt.Fprint(w, pterm.Success.Sprintfln("%d file(s) written", written))
	if res.Opened != "" {
		fmt.Fprintf(w, "  opened %s\n", res.Opened)
	}
}

// printRuns renders the history list as a table.
func printRuns(w io.Writer, runs []journal.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}

	data := pterm.TableData{{"ID", "Started", "Mode", "Module", "Status", "Files", "Directory"}}
	for _, r := range runs {
		data = append(data, []string{
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Mode,
			r.Module,
			r.Status,
			strconv.Itoa(r.FileCount),
			r.Directory,
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

// printRun renders one run with its files.
func printRun(w io.Writer, r *journal.Run) {
	fmt.Fprintf(w, "Run:       %s\n", r.ID)
	fmt.Fprintf(w, "Mode:      %s\n", r.Mode)
	fmt.Fprintf(w, "Module:    %s\n", r.Module)
	fmt.Fprintf(w, "Directory: %s\n", r.Directory)
	fmt.Fprintf(w, "Started:   %s\n", r.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:  %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))

	if r.Status == journal.StatusFailed {
		fmt.Fprint(w, pterm.Error.Sprintfln("failed: %s", r.Error))
	} else {
		fmt.Fprint(w, pterm.Success.Sprintfln("%s", r.Status))
	}

	for _, f := range r.Files {
		fmt.Fprintf(w, "  %-7s L%d %-12s %s\n", f.Action, f.Level, f.Node, f.Path)
	}
}
