package engine

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/fsys"
	"github.com/teranos/fgen/graph"
	"github.com/teranos/fgen/logger"
	"github.com/teranos/fgen/syntax"
	"github.com/teranos/fgen/template"
)

// WriteOptions controls how Write treats the file system.
type WriteOptions struct {
	// AppendEntrypoints appends to entrypoints that exist as regular files.
	AppendEntrypoints bool
	// DryRun computes the actions without writing or opening anything.
	DryRun bool
	// Logger defaults to the generator's logger.
	Logger *zap.SugaredLogger
}

// Write persists a built run. Non-entrypoint files go first, shallowest
// level first; entrypoints follow in declared order, appended to when they
// already exist as regular files and opts allows it. The opener is called
// once at the end if an open node was written.
func (g *Generator) Write(ctx context.Context, directory string, levels graph.Levels, instances Instances, enabled map[string]bool, opts WriteOptions) ([]FileResult, string, error) {
	if opts.Logger == nil {
		opts.Logger = g.log
	}

	var (
		files  []FileResult
		opened string
	)

	for depth, bucket := range levels {
		for _, name := range bucket {
			if g.rel.IsEntrypoint(name) {
				continue
			}
			result, err := g.writeOne(ctx, directory, name, depth, instances, enabled, false, opts)
			if err != nil {
				return files, "", err
			}
			files = append(files, result)
			if result.Open {
				opened = result.Path
			}
		}
	}

	for _, name := range g.rel.Entrypoints {
		depth, _ := levels.Level(name)
		result, err := g.writeOne(ctx, directory, name, depth, instances, enabled, opts.AppendEntrypoints, opts)
		if err != nil {
			return files, "", err
		}
		files = append(files, result)
		if result.Open {
			opened = result.Path
		}
	}

	if opened != "" && !opts.DryRun {
		if err := g.opener.Open(opened); err != nil {
			opts.Logger.Warnw("Could not open file in editor",
				logger.FieldPath, opened,
				logger.FieldError, err)
		}
	}

	return files, opened, nil
}

func (g *Generator) writeOne(ctx context.Context, directory, name string, depth int, instances Instances, enabled map[string]bool, allowAppend bool, opts WriteOptions) (FileResult, error) {
	result := FileResult{Node: name, Level: depth, Action: ActionSkip}

	instance, ok := instances[name]
	if !enabled[name] || !ok {
		return result, nil
	}
	if err := template.Validate(instance); err != nil {
		return result, err
	}

	result.Path = instance.Path()
	result.Open = g.rel.Nodes[name].Open
	result.Action = ActionCreate
	if allowAppend && fsys.IsRegular(g.fs, result.Path) {
		result.Action = ActionAppend
	}

	log := opts.Logger.With(logger.FieldNode, name, logger.FieldPath, result.Path)

	if g.syntaxCheck {
		g.checkSyntax(ctx, log, instance)
	}

	if opts.DryRun {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if err := g.createDirectories(ctx, log, directory, instance.Directories()); err != nil {
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	content := []byte(instance.Content())
	var err error
	if result.Action == ActionAppend {
		content, err = g.appendContent(result.Path, content)
		if err == nil {
			err = g.fs.AppendFile(result.Path, content, fsys.FilePerm)
		}
	} else {
		err = g.fs.WriteFile(result.Path, content, fsys.FilePerm)
	}
	if err != nil {
		return result, errors.Wrapf(err, "failed to write %s", result.Path)
	}

	log.Infow("Wrote file", logger.FieldAction, string(result.Action), logger.FieldLevel, depth)
	if logger.ShouldOutput(logger.Verbosity, logger.OutputContents) {
		log.Debugw("Rendered content", "content", instance.Content())
	}
	return result, nil
}

// appendContent prefixes content with a line ending when the existing file
// does not end in one, so the new lines never join its last line.
func (g *Generator) appendContent(path string, content []byte) ([]byte, error) {
	existing, err := g.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	if n := len(existing); n > 0 && existing[n-1] != '\n' && existing[n-1] != '\r' {
		return append([]byte(g.eol), content...), nil
	}
	return content, nil
}

// createDirectories creates each segment of dirs under base in turn. A
// segment whose parent is missing is logged and skipped, and an existing
// segment is left alone. Any other failure is returned.
func (g *Generator) createDirectories(ctx context.Context, log *zap.SugaredLogger, base string, dirs []string) error {
	prev := base
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		next := filepath.Join(prev, dir)

		info, err := g.fs.Stat(prev)
		switch {
		case err != nil:
			log.Warnw("Cannot create directory, parent is missing",
				"directory", next,
				logger.FieldError, err)
		case info.IsDir():
			err := g.fs.Mkdir(next, fsys.DirPerm)
			switch {
			case err == nil, os.IsExist(err):
			case os.IsNotExist(err):
				log.Warnw("Cannot create directory, parent is missing",
					"directory", next,
					logger.FieldError, err)
			default:
				return errors.Wrapf(err, "failed to create directory %s", next)
			}
		}
		prev = next
	}
	return nil
}

func (g *Generator) checkSyntax(ctx context.Context, log *zap.SugaredLogger, instance template.FileInstance) {
	diags, err := syntax.Check(ctx, instance.Path(), []byte(instance.Content()))
	if err != nil {
		log.Warnw("Syntax check failed", logger.FieldError, err)
		return
	}
	for _, d := range diags {
		log.Warnw("Syntax error in rendered file", "location", d.String())
	}
}
