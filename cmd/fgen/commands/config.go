package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fgen/config"
	"github.com/teranos/fgen/display"
	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/logger"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, validate and initialize fgen.toml",
	Long: `Inspect the configuration fgen runs with.

Sources, lowest precedence first:
  1. built-in defaults
  2. user file     ~/.config/fgen/fgen.toml
  3. project file  the nearest fgen.toml above the working directory
  4. environment   FGEN_* variables (FGEN_EDITOR, FGEN_ROOT, ...)
  5. --config      an explicit file`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := display.FormatFromCommand(cmd)
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		if format == display.FormatTOML {
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return display.Write(cmd.OutOrStdout(), cfg, format)
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration files for errors and unknown keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range config.ConfigFiles() {
			if _, err := os.Stat(f.Path); err != nil {
				continue
			}
			unknown, err := config.CheckFile(f.Path)
			if err != nil {
				return err
			}
			for _, key := range unknown {
				fmt.Fprint(out, pterm.Warning.Sprintfln("%s: unknown key %s", f.Path, key))
			}
		}
		fmt.Fprint(out, pterm.Success.Sprintfln("configuration is valid"))
		return nil
	},
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show which source every setting comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := display.FormatFromCommand(cmd)
		if err != nil {
			return err
		}
		in, err := config.GetIntrospection()
		if err != nil {
			return err
		}
		if format == display.FormatText {
			printIntrospection(cmd.OutOrStdout(), in)
			return nil
		}
		return display.Write(cmd.OutOrStdout(), in, format)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an fgen.toml",
	Long: `Write a configuration file, by default ./fgen.toml. With --from the file
is fetched from a URL, a git repository or a local path (anything go-getter
understands) and validated before it is written.`,
	Example: `  fgen config init
  fgen config init --from git::https://github.com/acme/ui-conventions//fgen.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileName
		if len(args) == 1 {
			path = args[0]
		}
		path, err := filepath.Abs(path)
		if err != nil {
			return errors.Wrap(err, "failed to resolve path")
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return errors.WithHint(
				errors.Newf("%s already exists", path),
				"pass --force to overwrite it (the old file is kept as .back1)",
			)
		}

		if from, _ := cmd.Flags().GetString("from"); from != "" {
			logger.Debugw("Fetching config", "from", from, logger.FieldPath, path)
			if err := config.Install(contextOrBackground(cmd), from, path); err != nil {
				return err
			}
		} else if err := config.WriteFile(path, config.Default()); err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("wrote %s", path))
		return nil
	},
}

func init() {
	configShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")
	configWhereCmd.Flags().String("format", "text", "Output format: text, json, yaml, toml")
	configInitCmd.Flags().String("from", "", "Fetch the file from this source instead of writing defaults")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	ConfigCmd.AddCommand(configShowCmd, configValidateCmd, configWhereCmd, configInitCmd)
}

// printIntrospection lists the settings grouped by the source that set them.
func printIntrospection(w io.Writer, in *config.Introspection) {
	fmt.Fprintln(w, "Files (lowest precedence first):")
	for _, f := range in.Files {
		state := "missing"
		if _, err := os.Stat(f.Path); err == nil {
			state = "loaded"
		}
		fmt.Fprintf(w, "  %-8s %s (%s)\n", f.Source, f.Path, state)
	}

	var groups []string
	bySource := make(map[string][]config.SettingInfo)
	for _, s := range in.Settings {
		label := string(s.Source)
		if s.SourcePath != "" {
			label += " " + s.SourcePath
		}
		if _, ok := bySource[label]; !ok {
			groups = append(groups, label)
		}
		bySource[label] = append(bySource[label], s)
	}

	for _, label := range groups {
		fmt.Fprintf(w, "\n%s:\n", label)
		for _, s := range bySource[label] {
			fmt.Fprintf(w, "  %s = %v\n", s.Key, s.Value)
		}
	}
}
