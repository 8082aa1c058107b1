package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

const codeNotFound = "CONFIG_NOT_FOUND"

func configFilenames() []string {
	return []string{"md2docx.toml", ".md2docx.toml"}
}

// DefaultFilename is the name `md2docx init` writes.
func DefaultFilename() string {
	return configFilenames()[0]
}

func Load(configPath string) (*Config, error) {
	resolvedPath, err := resolveConfigPath(configPath)
	if err != nil {
		return nil, err
	}

	absConfigPath, err := filepath.Abs(resolvedPath)
	if err != nil {
		return nil, oops.Wrapf(err, "resolving absolute config path")
	}

	// Unmarshal only overwrites keys present in the file, so seeding with
	// the defaults keeps explicit zero values such as code_indent = 0.
	cfg := Default()
	cfg.Batch.Patterns = nil
	k := koanf.New(".")

	if loadErr := k.Load(file.Provider(absConfigPath), toml.Parser()); loadErr != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", absConfigPath).
			Hint("Fix TOML syntax in your config").
			Wrapf(loadErr, "loading config from %q", absConfigPath)
	}

	if unmarshalErr := k.Unmarshal("", cfg); unmarshalErr != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", absConfigPath).
			Hint("Fix config structure to match the md2docx schema").
			Wrapf(unmarshalErr, "decoding config from %q", absConfigPath)
	}

	cfg.ConfigDir = filepath.Dir(absConfigPath)
	cfg.normalize()

	if valErr := cfg.Validate(); valErr != nil {
		return nil, valErr
	}

	if cfg.Batch.Output != "" && !filepath.IsAbs(cfg.Batch.Output) {
		cfg.Batch.Output = filepath.Clean(filepath.Join(cfg.ConfigDir, cfg.Batch.Output))
	}

	return cfg, nil
}

// Resolve loads configPath when given. Otherwise it loads the nearest config
// file above the working directory, falling back to Default when none exists.
func Resolve(configPath string) (*Config, error) {
	if configPath != "" {
		return Load(configPath)
	}

	foundPath, err := FindConfigFile()
	if err != nil {
		if IsNotFound(err) {
			cfg := Default()
			cfg.ConfigDir, _ = os.Getwd()
			return cfg, nil
		}

		return nil, err
	}

	return Load(foundPath)
}

func FindConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", oops.Wrapf(err, "getting working directory")
	}

	for {
		foundPath, found, findErr := findConfigInDirectory(dir)
		if findErr != nil {
			return "", findErr
		}

		if found {
			return foundPath, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			return "", oops.
				Code(codeNotFound).
				Hint("Run 'md2docx init' to create a config file").
				Errorf("no md2docx.toml or .md2docx.toml found in any parent directory")
		}

		dir = parentDir
	}
}

// IsNotFound reports whether err means no config file could be located.
func IsNotFound(err error) bool {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}

	return oopsErr.Code() == codeNotFound
}

func resolveConfigPath(configPath string) (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", oops.
					Code(codeNotFound).
					With("path", configPath).
					Hint("Create the file or pass a valid --config path").
					Errorf("config file %q does not exist", configPath)
			}

			return "", oops.Wrapf(err, "checking config file %q", configPath)
		}

		return configPath, nil
	}

	return FindConfigFile()
}

func findConfigInDirectory(dir string) (string, bool, error) {
	for _, name := range configFilenames() {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, oops.Wrapf(err, "checking for config file at %q", path)
		}
	}

	return "", false, nil
}
