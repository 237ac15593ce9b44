package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/template"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.LineEnding(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Requires) != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			return errors.WithHint(
				errors.NewConfigError("requires %q is not a semver constraint: %v", c.Requires, err),
				`use a constraint such as ">= 1.2.0"`,
			)
		}
	}

	for _, kind := range c.TemplateKinds() {
		if _, ok := template.Lookup(kind); !ok {
			return errors.WithHintf(
				errors.NewConfigError("templates.%s is not a known file kind", kind),
				"known kinds: %s", strings.Join(template.Kinds(), ", "),
			)
		}
		tc := c.Templates[kind]
		if _, err := template.ParseExportType(tc.ExportType); err != nil {
			return errors.Wrapf(err, "templates.%s.export_type", kind)
		}
	}

	return nil
}
