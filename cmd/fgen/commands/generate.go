package commands

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/fgen/config"
	"github.com/teranos/fgen/display"
	"github.com/teranos/fgen/engine"
	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/internal/app"
	"github.com/teranos/fgen/logger"
	"github.com/teranos/fgen/settings"
)

// CreateCmd represents the create command
var CreateCmd = &cobra.Command{
	Use:   "create [target]",
	Short: "Create a new module directory",
	Long: `Create <target>/<module-dir> and scaffold the module in it.

The target may be a directory or a file inside one. Without a target the
root_directory from fgen.toml is used, then the top level of the current git
work tree, then the working directory. The module directory must not exist.

Without --name the module name and the files to generate are asked for
interactively.`,
	Example: `  fgen create -n UserCard src/components
  fgen create -n "user card" --without test`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, engine.ModeCreate, false)
	},
}

// AddCmd represents the add command
var AddCmd = &cobra.Command{
	Use:   "add [target]",
	Short: "Add module files to an existing directory",
	Long: `Scaffold the module into an existing directory and append its export to
the barrel file, which must already exist unless the barrel is disabled.`,
	Example: `  fgen add -n Avatar src/components/user-card
  fgen add -n Avatar --without barrel .`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, engine.ModeAdd, false)
	},
}

// PlanCmd represents the plan command
var PlanCmd = &cobra.Command{
	Use:   "plan [target]",
	Short: "Show what create or add would write",
	Long: `Compute the generation levels and the action for every file (create,
append or skip) without touching the file system.`,
	Example: `  fgen plan -n UserCard --format json
  fgen plan --mode add -n Avatar src/components/user-card`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		switch engine.Mode(mode) {
		case engine.ModeCreate, engine.ModeAdd:
		default:
			return errors.NewInputError("unknown mode %q (want create or add)", mode)
		}
		return runGenerate(cmd, args, engine.Mode(mode), true)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{CreateCmd, AddCmd, PlanCmd} {
		cmd.Flags().StringP("name", "n", "", "Module name (asked for when omitted)")
		cmd.Flags().StringSlice("with", nil, "File kinds to generate in addition to the configured defaults")
		cmd.Flags().StringSlice("without", nil, "File kinds to skip")
		cmd.Flags().String("format", "text", "Output format: text, json, yaml, toml")
	}
	for _, cmd := range []*cobra.Command{CreateCmd, AddCmd} {
		cmd.Flags().Bool("dry-run", false, "Show the plan without writing files")
		cmd.Flags().Bool("no-open", false, "Do not open the component in the editor")
	}
	PlanCmd.Flags().String("mode", string(engine.ModeCreate), "Mode to plan: create or add")
}

func runGenerate(cmd *cobra.Command, args []string, mode engine.Mode, plan bool) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt)
	defer stop()

	format, err := display.FormatFromCommand(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	dryRun := plan
	if !plan {
		dryRun, _ = cmd.Flags().GetBool("dry-run")
	}
	noOpen, _ := cmd.Flags().GetBool("no-open")

	opts := app.Options{
		Config: cfg,
		Opener: app.OpenerFor(cfg, !noOpen && !dryRun),
	}
	if !dryRun {
		j, err := app.OpenJournal(cfg)
		if err != nil {
			logger.Warnw("Journal unavailable, run will not be recorded", logger.FieldError, err)
		} else if j != nil {
			defer j.Close()
			opts.Journal = j
		}
	}

	svc, err := app.New(opts)
	if err != nil {
		return err
	}

	provider, err := settingsProvider(cmd, svc, cfg, plan)
	if err != nil {
		return err
	}

	var target string
	if len(args) == 1 {
		target = args[0]
	}

	res, err := svc.Run(ctx, app.Request{
		Mode:     mode,
		Target:   target,
		Settings: provider,
		DryRun:   dryRun,
	})
	if err != nil {
		return err
	}

	if format == display.FormatText {
		printResult(cmd.OutOrStdout(), res)
		return nil
	}
	return display.Write(cmd.OutOrStdout(), res, format)
}

// settingsProvider returns flag-driven settings when --name is given (or
// for plan, which falls back to default_module_name), and an interactive
// prompt otherwise.
func settingsProvider(cmd *cobra.Command, svc *app.Service, cfg *config.Config, plan bool) (settings.Provider, error) {
	name, _ := cmd.Flags().GetString("name")
	with, _ := cmd.Flags().GetStringSlice("with")
	without, _ := cmd.Flags().GetStringSlice("without")

	if strings.TrimSpace(name) == "" && plan {
		name = cfg.DefaultModuleName
	}

	static, err := svc.StaticSettings(name, with, without)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) != "" || !isInteractive() {
		return static, nil
	}
	return settings.NewPrompt(svc.Nodes(), static.Enabled, ""), nil
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// contextOrBackground guards commands executed without ExecuteContext.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
