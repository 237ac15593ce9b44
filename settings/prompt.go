package settings

import (
	"context"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/fgen/errors"
)

// Prompt asks for the module name and the files to generate on the
// terminal.
type Prompt struct {
	// Nodes are offered in this order.
	Nodes []string
	// Defaults preselects nodes in the multiselect.
	Defaults map[string]bool
	// Name skips the name question when set.
	Name string

	askText   func(prompt string) (string, error)
	askSelect func(prompt string, options, selected []string) ([]string, error)
}

// NewPrompt returns a Prompt backed by pterm's interactive printers.
func NewPrompt(nodes []string, defaults map[string]bool, name string) *Prompt {
	return &Prompt{
		Nodes:    nodes,
		Defaults: defaults,
		Name:     name,
		askText: func(prompt string) (string, error) {
			return pterm.DefaultInteractiveTextInput.Show(prompt)
		},
		askSelect: func(prompt string, options, selected []string) ([]string, error) {
			return pterm.DefaultInteractiveMultiselect.
				WithOptions(options).
				WithDefaultOptions(selected).
				WithFilter(false).
				Show(prompt)
		},
	}
}

func (p *Prompt) Settings(ctx context.Context) (Result, error) {
	name := p.Name
	if strings.TrimSpace(name) == "" {
		answer, err := p.askText("Module name")
		if err != nil {
			return Result{}, errors.Wrap(err, "failed to read module name")
		}
		name = answer
	}
	if strings.TrimSpace(name) == "" {
		return Result{}, errors.NewInputError("module name is empty")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	chosen, err := p.askSelect("Files to generate", p.Nodes, EnabledNames(p.Nodes, p.Defaults))
	if err != nil {
		return Result{}, errors.Wrap(err, "failed to read file selection")
	}

	enabled := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		enabled[n] = false
	}
	for _, n := range chosen {
		enabled[n] = true
	}
	return Result{Name: name, Enabled: enabled}, nil
}
