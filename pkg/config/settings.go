package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Setting keys
const (
	KeyUserScriptsBin = "user-scripts-bin"
	KeyScriptShell    = "script-shell"
	KeyScriptTimeout  = "script-timeout"
	KeyVisitOnce      = "visit-once"
)

// EnvPrefix marks environment variables that override settings:
// HOMEBUILD_USER_SCRIPTS_BIN sets user-scripts-bin.
const EnvPrefix = "HOMEBUILD_"

// Defaults returns the default settings table
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		KeyUserScriptsBin: "~/.bin",
		KeyScriptShell:    "/bin/sh",
		KeyScriptTimeout:  "0s",
		KeyVisitOnce:      false,
	}
}

// Values is the decoded form of the settings
type Values struct {
	UserScriptsBin string        `koanf:"user-scripts-bin"`
	ScriptShell    string        `koanf:"script-shell"`
	ScriptTimeout  time.Duration `koanf:"script-timeout"`
	VisitOnce      bool          `koanf:"visit-once"`
}

// Settings is the key/value lookup handed to the builder. It is always
// passed explicitly; there is no package-level instance.
type Settings struct {
	k      *koanf.Koanf
	values Values
}

// LoadOptions controls where settings come from
type LoadOptions struct {
	// File is a TOML or YAML settings file. Empty means no file.
	File string
	// Required makes a missing File an error instead of being skipped
	Required bool
	// SkipEnv disables HOMEBUILD_* environment overrides
	SkipEnv bool
}

// Load builds Settings from defaults, then the settings file, then the environment.
func Load(opts LoadOptions) (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	// 2. Settings file
	if opts.File != "" {
		if err := loadFile(k, opts.File, opts.Required); err != nil {
			return nil, err
		}
	}

	// 3. Environment
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
		}
	}

	return fromKoanf(k)
}

// New builds Settings from the defaults plus the given overrides
func New(overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply settings overrides")
		}
	}
	return fromKoanf(k)
}

// Default returns Settings holding only the defaults
func Default() *Settings {
	s, err := New(nil)
	if err != nil {
		panic(fmt.Sprintf("default settings are invalid: %v", err))
	}
	return s
}

func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot read settings file %s", path)
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse settings file %s", path)
	}
	return nil
}

func fromKoanf(k *koanf.Koanf) (*Settings, error) {
	var values Values
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &values,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &values, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}

	if strings.TrimSpace(values.UserScriptsBin) == "" {
		return nil, errors.NewConfigurationError("%s must not be empty", KeyUserScriptsBin)
	}
	if strings.TrimSpace(values.ScriptShell) == "" {
		return nil, errors.NewConfigurationError("%s must not be empty", KeyScriptShell)
	}
	if values.ScriptTimeout < 0 {
		return nil, errors.NewConfigurationError("%s must not be negative", KeyScriptTimeout)
	}

	return &Settings{k: k, values: values}, nil
}

// String returns the raw string value for key, empty when unset
func (s *Settings) String(key string) string {
	return s.k.String(key)
}

// Exists reports whether key has a value
func (s *Settings) Exists(key string) bool {
	return s.k.Exists(key)
}

// All returns a flat copy of every setting
func (s *Settings) All() map[string]interface{} {
	return s.k.All()
}

// UserScriptsBin is the unexpanded user script installation directory
func (s *Settings) UserScriptsBin() string {
	return s.values.UserScriptsBin
}

// Shell is the interpreter build scripts are passed to with -c
func (s *Settings) Shell() string {
	return s.values.ScriptShell
}

// ScriptTimeout bounds each build script; zero means no limit
func (s *Settings) ScriptTimeout() time.Duration {
	return s.values.ScriptTimeout
}

// VisitOnce makes the queue builder visit shared imports a single time
func (s *Settings) VisitOnce() bool {
	return s.values.VisitOnce
}
