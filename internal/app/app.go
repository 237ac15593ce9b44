// Package app wires configuration, settings, the generation engine and the
// run journal into the operations the CLI and the MCP server expose.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/fgen/config"
	"github.com/teranos/fgen/editor"
	"github.com/teranos/fgen/engine"
	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/fsys"
	"github.com/teranos/fgen/graph"
	"github.com/teranos/fgen/journal"
	"github.com/teranos/fgen/logger"
	"github.com/teranos/fgen/settings"
	"github.com/teranos/fgen/version"
	"github.com/teranos/fgen/workspace"
)

// Recorder stores finished runs.
type Recorder interface {
	Record(ctx context.Context, run journal.Run) error
}

// Options configures a Service.
type Options struct {
	Config *config.Config
	// Relationships defaults to graph.Default().
	Relationships *graph.Relationships
	// FS defaults to the host file system.
	FS     fsys.FileSystem
	Opener editor.Opener
	// Journal may be nil to skip recording.
	Journal Recorder
	Logger  *zap.SugaredLogger
	// WorkDir defaults to the process working directory.
	WorkDir string
	// Version defaults to the running build.
	Version *version.Info
}

// Service runs generations with one configuration. SetConfig swaps the
// configuration between runs.
type Service struct {
	mu      sync.RWMutex
	cfg     *config.Config
	rel     graph.Relationships
	fs      fsys.FileSystem
	opener  editor.Opener
	journal Recorder
	log     *zap.SugaredLogger
	wd      string
	version version.Info
	now     func() time.Time
}

// New checks the configuration and returns a Service.
func New(opts Options) (*Service, error) {
	s := &Service{
		rel:     graph.Default(),
		fs:      opts.FS,
		opener:  opts.Opener,
		journal: opts.Journal,
		log:     opts.Logger,
		wd:      opts.WorkDir,
		version: version.Get(),
		now:     time.Now,
	}
	if opts.Relationships != nil {
		s.rel = *opts.Relationships
	}
	if s.fs == nil {
		s.fs = fsys.OS()
	}
	if s.opener == nil {
		s.opener = editor.Noop{}
	}
	if s.log == nil {
		s.log = logger.ComponentLogger("app")
	}
	if opts.Version != nil {
		s.version = *opts.Version
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := s.SetConfig(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// SetConfig validates cfg and makes it the configuration of later runs.
func (s *Service) SetConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.version.Check(cfg.Requires); err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Config returns the active configuration.
func (s *Service) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Nodes returns the graph's node names in level order.
func (s *Service) Nodes() []string {
	return s.rel.Names()
}

// Generator builds an engine for the active configuration.
func (s *Service) Generator() (*engine.Generator, error) {
	cfg := s.Config()

	templates, err := cfg.TemplateConfigs()
	if err != nil {
		return nil, err
	}
	eol, err := cfg.LineEnding()
	if err != nil {
		return nil, err
	}

	return engine.New(engine.Options{
		Relationships: s.rel,
		Templates:     templates,
		EOL:           eol,
		FS:            s.fs,
		Opener:        s.opener,
		Logger:        s.log.Named("engine"),
		SyntaxCheck:   cfg.Syntax.Check,
	})
}

// DefaultEnabled returns the files generated when no flag says otherwise.
func (s *Service) DefaultEnabled() (map[string]bool, error) {
	templates, err := s.Config().TemplateConfigs()
	if err != nil {
		return nil, err
	}
	return settings.Defaults(s.Nodes(), templates), nil
}

// StaticSettings builds non-interactive settings from a name and
// with/without lists applied over the defaults.
func (s *Service) StaticSettings(name string, with, without []string) (settings.Static, error) {
	enabled, err := s.DefaultEnabled()
	if err != nil {
		return settings.Static{}, err
	}
	if err := settings.Toggle(enabled, s.Nodes(), with, without); err != nil {
		return settings.Static{}, err
	}
	return settings.Static{Name: name, Enabled: enabled}, nil
}

// Request is one create, add or plan call.
type Request struct {
	Mode engine.Mode
	// Target is a drop path; a file resolves to its parent directory. Empty
	// means the configured root, the git top level or the working directory.
	Target   string
	Settings settings.Provider
	DryRun   bool
}

// Run executes req and records it in the journal unless it is a dry run.
func (s *Service) Run(ctx context.Context, req Request) (*engine.Result, error) {
	started := s.now()
	res, err := s.run(ctx, req)

	if !req.DryRun && s.journal != nil && !errors.Is(err, errSettings) {
		entry := journal.FromResult(res, started, s.now(), err)
		if entry.Mode == "" {
			entry.Mode = string(req.Mode)
		}
		if rerr := s.journal.Record(ctx, entry); rerr != nil {
			s.log.Warnw("Could not record run in journal", logger.FieldError, rerr)
		}
	}
	return res, err
}

// errSettings marks runs that never started because no settings were
// obtained (for example a cancelled prompt). They are not journaled.
var errSettings = errors.New("no settings")

func (s *Service) run(ctx context.Context, req Request) (*engine.Result, error) {
	if req.Mode != engine.ModeCreate && req.Mode != engine.ModeAdd {
		return nil, errors.NewInputError("unknown mode %q", req.Mode)
	}
	if req.Settings == nil {
		return nil, errors.New("app: no settings provider")
	}

	chosen, err := req.Settings.Settings(ctx)
	if err != nil {
		return nil, errors.Mark(err, errSettings)
	}

	gen, err := s.Generator()
	if err != nil {
		return nil, err
	}

	root, err := s.root(req.Target)
	if err != nil {
		return nil, err
	}
	s.log.Debugw("Resolved root", "root", root.Path, "source", string(root.Source))

	er := engine.Request{Root: root.Path, Name: chosen.Name, Enabled: chosen.Enabled}

	switch {
	case req.DryRun:
		if root.Source == workspace.SourceTarget {
			if er.Root, err = gen.ResolveTarget(root.Path); err != nil {
				return nil, err
			}
		}
		return gen.Plan(ctx, req.Mode, er)
	case root.Source == workspace.SourceTarget && req.Mode == engine.ModeCreate:
		return gen.CreateAt(ctx, er)
	case root.Source == workspace.SourceTarget:
		return gen.AddAt(ctx, er)
	case req.Mode == engine.ModeCreate:
		return gen.Create(ctx, er)
	default:
		return gen.Add(ctx, er)
	}
}

func (s *Service) root(target string) (workspace.Root, error) {
	return workspace.Resolve(target, s.Config().RootDirectory, s.wd)
}

// OpenerFor returns the editor configured in cfg, or a no-op when opening
// is disabled or no editor command is known.
func OpenerFor(cfg *config.Config, enabled bool) editor.Opener {
	if !enabled || !cfg.Editor.Enabled {
		return editor.Noop{}
	}
	cmd := editor.NewCommand(cfg.Editor.Command, cfg.Editor.Wait)
	if strings.TrimSpace(cmd.Line) == "" {
		logger.Debugw("No editor configured, generated files will not be opened")
		return editor.Noop{}
	}
	return cmd
}

// OpenJournal opens the configured journal, or returns nil when journaling
// is disabled.
func OpenJournal(cfg *config.Config) (*journal.Journal, error) {
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	path := cfg.GetJournalPath()
	if !filepath.IsAbs(path) && path != ":memory:" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get working directory")
		}
		path = filepath.Join(wd, path)
	}
	return journal.Open(path, logger.ComponentLogger("journal"))
}
