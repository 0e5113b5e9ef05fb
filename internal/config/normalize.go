package config

import (
	"path/filepath"
	"slices"
	"strings"
)

func normalize(cfg *Config) {
	cfg.Content.Directory = filepath.Clean(strings.TrimSpace(cfg.Content.Directory))
	cfg.Output.Directory = filepath.Clean(strings.TrimSpace(cfg.Output.Directory))

	exts := make([]string, 0, len(cfg.Content.Extensions))
	for _, e := range cfg.Content.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	cfg.Content.Extensions = dedupe(exts)

	formats := make([]string, 0, len(cfg.Output.Formats))
	for _, f := range cfg.Output.Formats {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	cfg.Output.Formats = dedupe(formats)

	cfg.EditLink.Pattern = strings.TrimSpace(cfg.EditLink.Pattern)
	cfg.EditLink.DocsRoot = strings.Trim(filepath.ToSlash(cfg.EditLink.DocsRoot), "/")
}

// dedupe keeps the first occurrence of every value, preserving order.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
