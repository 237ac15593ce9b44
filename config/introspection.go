package config

import (
	"os"
	"sort"
	"strings"

	"github.com/teranos/fgen/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceUser        ConfigSource = "user"        // ~/.config/fgen/fgen.toml
	SourceProject     ConfigSource = "project"     // fgen.toml above the working directory
	SourceEnvironment ConfigSource = "environment" // FGEN_* env vars
	SourceExplicit    ConfigSource = "explicit"    // --config
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource `json:"source" yaml:"source" toml:"source"`
	Path   string       `json:"path" yaml:"path" toml:"path"` // File path or environment variable name
}

// ConfigSources records, per dotted key, the file that last set it during
// loading. Keys absent here come from defaults or the environment.
var ConfigSources = make(map[string]SourceInfo)

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key" yaml:"key" toml:"key"`
	Value      interface{}  `json:"value" yaml:"value" toml:"value"`
	Source     ConfigSource `json:"source" yaml:"source" toml:"source"`
	SourcePath string       `json:"source_path,omitempty" yaml:"source_path,omitempty" toml:"source_path,omitempty"`
}

// Introspection provides metadata about the active configuration
type Introspection struct {
	Files    []SourceInfo  `json:"files" yaml:"files" toml:"files"`
	Settings []SettingInfo `json:"settings" yaml:"settings" toml:"settings"`
}

// GetIntrospection returns every effective setting with the source it was
// loaded from.
func GetIntrospection() (*Introspection, error) {
	mu.Lock()
	defer mu.Unlock()

	v, err := initViper()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config for introspection")
	}

	in := &Introspection{Files: configFiles()}
	flat := flatten(v.AllSettings(), "")

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := ConfigSources[key]; ok {
			info = si
		}

		// The explicit file outranks the environment.
		if info.Source != SourceExplicit {
			envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
			if _, ok := os.LookupEnv(envKey); ok {
				info = SourceInfo{Source: SourceEnvironment, Path: envKey}
			}
		}

		in.Settings = append(in.Settings, SettingInfo{
			Key:        key,
			Value:      flat[key],
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}

	return in, nil
}
