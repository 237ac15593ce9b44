// Package engine runs a generation: it orders the relationship graph into
// levels, builds one template instance per enabled node bottom-up and then
// writes the files top-down, appending to entrypoints that already exist.
package engine

import (
	"go.uber.org/zap"

	"github.com/teranos/fgen/editor"
	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/fsys"
	"github.com/teranos/fgen/graph"
	"github.com/teranos/fgen/logger"
	"github.com/teranos/fgen/template"
)

// Mode selects how a run treats its target directory.
type Mode string

const (
	// ModeCreate makes a new module directory and writes every file fresh.
	ModeCreate Mode = "create"
	// ModeAdd writes into an existing module directory and appends to
	// entrypoints that already exist.
	ModeAdd Mode = "add"
)

// Action is what happened (or would happen) to one file.
type Action string

const (
	ActionCreate Action = "create"
	ActionAppend Action = "append"
	ActionSkip   Action = "skip"
)

// Options configures a Generator.
type Options struct {
	Relationships graph.Relationships
	// Templates holds the configuration passed to each node's factory,
	// keyed by node name. A missing entry yields a zero Config.
	Templates map[string]template.Config
	EOL       template.EOL
	FS        fsys.FileSystem
	Opener    editor.Opener
	Logger    *zap.SugaredLogger
	// SyntaxCheck parses every rendered file before it is written and logs
	// any syntax errors as warnings.
	SyntaxCheck bool
}

// Generator executes runs against one graph. It holds no per-run state and
// may be reused.
type Generator struct {
	rel         graph.Relationships
	templates   map[string]template.Config
	eol         template.EOL
	fs          fsys.FileSystem
	opener      editor.Opener
	log         *zap.SugaredLogger
	syntaxCheck bool
}

// New validates the graph and returns a Generator.
func New(opts Options) (*Generator, error) {
	if err := opts.Relationships.Validate(); err != nil {
		return nil, err
	}
	if opts.FS == nil {
		return nil, errors.New("engine: no file system")
	}

	g := &Generator{
		rel:         opts.Relationships,
		templates:   opts.Templates,
		eol:         opts.EOL,
		fs:          opts.FS,
		opener:      opts.Opener,
		log:         opts.Logger,
		syntaxCheck: opts.SyntaxCheck,
	}
	if g.eol == "" {
		g.eol = template.LF
	}
	if g.opener == nil {
		g.opener = editor.Noop{}
	}
	if g.log == nil {
		g.log = logger.ComponentLogger("engine")
	}
	return g, nil
}

// Relationships returns the graph the generator was built with.
func (g *Generator) Relationships() graph.Relationships { return g.rel }

// Request is the input of one run.
type Request struct {
	// Root is the directory the module is created in (create) or the module
	// directory itself (add).
	Root string
	// Name is the module name as typed; it is normalized before use.
	Name string
	// Enabled maps node name to whether its file is generated. A missing
	// key means disabled.
	Enabled map[string]bool
	// DryRun computes the plan without touching the file system.
	DryRun bool
}

// FileResult describes one file of a run.
type FileResult struct {
	Node   string `json:"node" yaml:"node" toml:"node"`
	Level  int    `json:"level" yaml:"level" toml:"level"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Action Action `json:"action" yaml:"action" toml:"action"`
	Open   bool   `json:"open,omitempty" yaml:"open,omitempty" toml:"open,omitempty"`
}

// Result summarizes a run.
type Result struct {
	RunID     string       `json:"run_id" yaml:"run_id" toml:"run_id"`
	Mode      Mode         `json:"mode" yaml:"mode" toml:"mode"`
	Module    string       `json:"module" yaml:"module" toml:"module"`
	Directory string       `json:"directory" yaml:"directory" toml:"directory"`
	DryRun    bool         `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	Levels    graph.Levels `json:"levels" yaml:"levels" toml:"levels"`
	Files     []FileResult `json:"files" yaml:"files" toml:"files"`
	Opened    string       `json:"opened,omitempty" yaml:"opened,omitempty" toml:"opened,omitempty"`
}
