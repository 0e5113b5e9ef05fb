package config

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// Init writes a starter configuration carrying src as the authored navigation.
func Init(configPath string, force bool, src nav.Source) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.NewError(errors.CategoryConfig, "configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	cfg := Default()
	cfg.Site = &src
	cfg.Output.Formats = []string{FormatJSON, FormatHugo}
	cfg.Output.HeadPartial = true

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").WithContext("path", dir).Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").WithContext("path", configPath).Build()
	}
	return nil
}

// Marshal encodes cfg as YAML with two-space indentation.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to marshal configuration").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to marshal configuration").Build()
	}
	return buf.Bytes(), nil
}
