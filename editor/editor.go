// Package editor hands the file a run marks as "open" to the user's editor.
package editor

import (
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/fgen/errors"
)

// Opener opens one path. Generation calls it at most once per run.
type Opener interface {
	Open(path string) error
}

// Noop discards open requests.
type Noop struct{}

func (Noop) Open(string) error { return nil }

// Command launches an editor command line with the path appended as the
// last argument.
type Command struct {
	// Line is split with shell quoting rules, e.g. `code --reuse-window`.
	Line string
	// Wait attaches the terminal and blocks until the editor exits. Without
	// it the editor is started and left running.
	Wait bool

	run func(*exec.Cmd) error
}

// NewCommand returns a Command for line, falling back to $VISUAL and then
// $EDITOR when line is blank.
func NewCommand(line string, wait bool) *Command {
	if strings.TrimSpace(line) == "" {
		line = os.Getenv("VISUAL")
	}
	if strings.TrimSpace(line) == "" {
		line = os.Getenv("EDITOR")
	}
	return &Command{Line: line, Wait: wait}
}

// Args returns the argv that Open would execute for path.
func (c *Command) Args(path string) ([]string, error) {
	if strings.TrimSpace(c.Line) == "" {
		return nil, errors.WithHint(
			errors.New("no editor configured"),
			"set editor.command in fgen.toml or export $VISUAL / $EDITOR",
		)
	}
	args, err := shellquote.Split(c.Line)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid editor command %q", c.Line)
	}
	return append(args, path), nil
}

func (c *Command) Open(path string) error {
	args, err := c.Args(path)
	if err != nil {
		return err
	}

	cmd := exec.Command(args[0], args[1:]...)
	if c.Wait {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	run := c.run
	if run == nil {
		run = func(cmd *exec.Cmd) error {
			if c.Wait {
				return cmd.Run()
			}
			if err := cmd.Start(); err != nil {
				return err
			}
			return cmd.Process.Release()
		}
	}

	if err := run(cmd); err != nil {
		return errors.Wrapf(err, "failed to open %s with %s", path, args[0])
	}
	return nil
}
