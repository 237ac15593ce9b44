// Package display renders command results in the formats the CLI offers.
package display

import (
	"io"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/fgen/errors"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatText, nil
	}
	return "", errors.WithHint(
		errors.NewInputError("unsupported format %q", s),
		"supported: text, json, yaml, toml",
	)
}

// Marshal encodes v in a structured format. FormatText is not handled here;
// each command renders its own text.
func Marshal(v interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := MarshalJSON(v, false)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal JSON")
		}
		return append(data, '\n'), nil

	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal YAML")
		}
		return data, nil

	case FormatTOML:
		if k := reflect.Indirect(reflect.ValueOf(v)).Kind(); k == reflect.Slice || k == reflect.Array {
			return nil, errors.New("TOML documents must be a table, wrap the list in a struct")
		}
		data, err := toml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal TOML")
		}
		return data, nil
	}
	return nil, errors.Newf("format %q has no structured encoding", format)
}

// Write marshals v and writes it to w.
func Write(w io.Writer, v interface{}, format Format) error {
	data, err := Marshal(v, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
