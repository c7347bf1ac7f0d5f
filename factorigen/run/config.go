package run

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	generate "github.com/toejough/factori/factorigen/run/3_generate"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = "factorigen.yaml"

// EnvPrefix marks environment variables that override the config file.
const EnvPrefix = "FACTORIGEN_"

// Config holds settings shared by every generator run in a project.
type Config struct {
	Dir     string `koanf:"dir"`     // package directory to read
	Import  string `koanf:"import"`  // factori import path used by generated code
	Lazy    bool   `koanf:"lazy"`    // also generate per-instance Func helpers
	Reorder bool   `koanf:"reorder"` // reorder declarations in the generated file
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		Dir:     ".",
		Import:  generate.DefaultFactoriPath,
		Reorder: true,
	}
}

// LoadConfig layers defaults, the YAML file at path, FACTORIGEN_ environment variables,
// and finally any flags set on flags. A missing file is only an error when required.
func LoadConfig(path string, required bool, flags *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()
	k := koanf.New(".")

	_, err := os.Stat(path)

	switch {
	case err == nil:
		err = k.Load(file.Provider(path), yaml.Parser())
		if err != nil {
			return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	case required || !errors.Is(err, fs.ErrNotExist):
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	err = k.Load(env.Provider(EnvPrefix, ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return applyFlags(cfg, flags)
}

// Functions - Private

func applyFlags(cfg Config, flags *pflag.FlagSet) (Config, error) {
	if flags == nil {
		return cfg, nil
	}

	var err error

	if flags.Changed("dir") {
		cfg.Dir, err = flags.GetString("dir")
	}

	if err == nil && flags.Changed("import") {
		cfg.Import, err = flags.GetString("import")
	}

	if err == nil && flags.Changed("lazy") {
		cfg.Lazy, err = flags.GetBool("lazy")
	}

	if err == nil && flags.Changed("reorder") {
		cfg.Reorder, err = flags.GetBool("reorder")
	}

	if err == nil && flags.Changed("verbose") {
		cfg.Verbose, err = flags.GetBool("verbose")
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read flags: %w", err)
	}

	return cfg, nil
}
