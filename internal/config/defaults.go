package config

// Output formats understood by the renderer package.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatHugo = "hugo"
)

// SupportedFormats lists every output format in the order they are written.
var SupportedFormats = []string{FormatJSON, FormatYAML, FormatTOML, FormatHugo}

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Content.Directory == "" {
		cfg.Content.Directory = "docs"
	}
	if len(cfg.Content.Extensions) == 0 {
		cfg.Content.Extensions = []string{".md", ".markdown"}
	}
	if len(cfg.Content.IndexNames) == 0 {
		cfg.Content.IndexNames = []string{"index", "README"}
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "dist"
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{FormatJSON}
	}
	if cfg.EditLink.DetectFromGit {
		if cfg.EditLink.DocsRoot == "" {
			cfg.EditLink.DocsRoot = cfg.Content.Directory
		}
		if cfg.EditLink.RepoPath == "" {
			cfg.EditLink.RepoPath = "."
		}
	}
}
