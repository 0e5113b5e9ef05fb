package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// Validate checks settings that would otherwise fail later in the build.
func Validate(cfg *Config) error {
	if cfg.Version != CurrentVersion {
		return errors.ConfigError("unsupported configuration version").
			WithContext("version", cfg.Version).
			WithContext("supported", CurrentVersion).
			Build()
	}
	for _, f := range cfg.Output.Formats {
		if !slices.Contains(SupportedFormats, f) {
			return errors.ConfigError("unknown output format").
				WithContext("format", f).
				WithContext("supported", strings.Join(SupportedFormats, ",")).
				Build()
		}
	}
	if p := cfg.EditLink.Pattern; p != "" && strings.Count(p, nav.PathPlaceholder) != 1 {
		return errors.ConfigError("edit_link.pattern must contain exactly one " + nav.PathPlaceholder + " placeholder").
			WithContext("pattern", p).
			Build()
	}
	if cfg.EditLink.Pattern != "" && cfg.EditLink.DetectFromGit {
		return errors.ConfigError("edit_link.pattern and edit_link.detect_from_git are mutually exclusive").Build()
	}
	return ValidateClean(cfg)
}

// ValidateClean rejects output.clean when removing the output directory would also remove
// the working directory, the content tree or the configuration file.
func ValidateClean(cfg *Config) error {
	if !cfg.Output.Clean {
		return nil
	}
	out, err := filepath.Abs(cfg.Output.Directory)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot resolve output directory").
			WithContext("directory", cfg.Output.Directory).
			Build()
	}
	refuse := func(reason, path string) error {
		return errors.ConfigError("refusing to clean output directory: " + reason).
			WithContext("directory", out).
			WithContext("path", path).
			Build()
	}
	if out == filepath.Dir(out) {
		return refuse("it is a filesystem root", out)
	}
	if wd, err := os.Getwd(); err == nil && contains(out, wd) {
		return refuse("it contains the working directory", wd)
	}
	if cfg.Content.Directory != "" {
		if content, err := filepath.Abs(cfg.Content.Directory); err == nil && contains(out, content) {
			return refuse("it contains the content directory", content)
		}
	}
	if cfg.path != "" {
		if file, err := filepath.Abs(cfg.path); err == nil && contains(out, file) {
			return refuse("it contains the configuration file", file)
		}
	}
	return nil
}

// contains reports whether path is dir or lies below it. Both must be absolute and clean.
func contains(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
