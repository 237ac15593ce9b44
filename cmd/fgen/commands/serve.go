package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/fgen/config"
	"github.com/teranos/fgen/editor"
	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/internal/app"
	"github.com/teranos/fgen/logger"
	"github.com/teranos/fgen/mcpserver"
)

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose create, add and plan as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout so agents can
scaffold modules. The configuration files are watched and reloaded while
the server runs. Files are never opened in an editor from here.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		opts := app.Options{Config: cfg, Opener: editor.Noop{}}
		j, err := app.OpenJournal(cfg)
		if err != nil {
			logger.Warnw("Journal unavailable, runs will not be recorded", logger.FieldError, err)
		} else if j != nil {
			defer j.Close()
			opts.Journal = j
		}

		svc, err := app.New(opts)
		if err != nil {
			return err
		}

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			if stop := watchConfig(svc); stop != nil {
				defer stop()
			}
		}

		logger.Infow("Serving MCP over stdio")
		return mcpserver.New(svc).Serve()
	},
}

func init() {
	ServeCmd.Flags().Bool("watch", true, "Reload fgen.toml when it changes")
}

// watchConfig reloads svc whenever one of the config files changes. It
// returns nil when there is nothing to watch.
func watchConfig(svc *app.Service) func() {
	var paths []string
	for _, f := range config.ConfigFiles() {
		paths = append(paths, f.Path)
	}

	w, err := config.NewWatcher(paths...)
	if err != nil {
		logger.Debugw("Config watching disabled", logger.FieldError, err)
		return nil
	}
	w.OnReload(svc.SetConfig)
	config.SetGlobalWatcher(w)
	w.Start()

	return func() {
		config.SetGlobalWatcher(nil)
		if err := w.Stop(); err != nil {
			logger.Debugw("Config watcher stop failed", logger.FieldError, err)
		}
	}
}
