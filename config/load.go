package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/logger"
)

var (
	mu             sync.Mutex
	globalConfig   *Config
	viperInstance  *viper.Viper
	explicitConfig string
)

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

// SetConfigFile selects a file that overrides every other source, including
// environment variables. An empty path clears the selection.
func SetConfigFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	explicitConfig = path
	globalConfig = nil
	viperInstance = nil
}

// Load reads the fgen configuration using Viper
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path on top of the
// defaults, ignoring every other source.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration. The file chosen with SetConfigFile
// is kept.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	ConfigSources = make(map[string]SourceInfo)
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)

	SetDefaults(v)

	ConfigSources = make(map[string]SourceInfo)
	if err := mergeConfigFiles(v); err != nil {
		return nil, err
	}

	viperInstance = v
	return v, nil
}

// UserConfigPath returns ~/.config/fgen/fgen.toml (or the platform
// equivalent), or empty when no config directory is known.
func UserConfigPath() string {
	dir, err := userConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "fgen", FileName)
}

// FindProjectConfig searches for fgen.toml by walking up from dir.
// Returns the first path found, or empty string if none.
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ConfigFiles returns the files that take part in loading, lowest
// precedence first, with the source each one counts as.
func ConfigFiles() []SourceInfo {
	mu.Lock()
	defer mu.Unlock()
	return configFiles()
}

func configFiles() []SourceInfo {
	var files []SourceInfo
	if user := UserConfigPath(); user != "" {
		files = append(files, SourceInfo{Source: SourceUser, Path: user})
	}
	if wd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(wd); project != "" {
			files = append(files, SourceInfo{Source: SourceProject, Path: project})
		}
	}
	if explicitConfig != "" {
		files = append(files, SourceInfo{Source: SourceExplicit, Path: explicitConfig})
	}
	return files
}

// mergeConfigFiles merges configuration files in precedence order.
// User and project files are merged below environment variables; the
// explicit file is applied as overrides above them.
func mergeConfigFiles(v *viper.Viper) error {
	for _, file := range configFiles() {
		if _, err := os.Stat(file.Path); err != nil {
			if file.Source == SourceExplicit {
				return errors.WithHint(
					errors.Wrapf(err, "config file %s", file.Path),
					"check the path passed with --config",
				)
			}
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(file.Path)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", file.Path)
		}

		settings := tempViper.AllSettings()
		flat := flatten(settings, "")
		if file.Source == SourceExplicit {
			for key, value := range flat {
				v.Set(key, value)
			}
		} else if err := v.MergeConfigMap(settings); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", file.Path)
		}

		for key := range flat {
			ConfigSources[key] = file
		}
		logger.Debugw("Merged config file",
			"source", string(file.Source),
			logger.FieldPath, file.Path,
			logger.FieldCount, len(flat))
	}
	return nil
}

// flatten turns nested settings into dotted leaf keys.
func flatten(settings map[string]interface{}, prefix string) map[string]interface{} {
	out := make(map[string]interface{})
	for key, value := range settings {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			for k, v := range flatten(nested, full) {
				out[k] = v
			}
			continue
		}
		out[full] = value
	}
	return out
}
