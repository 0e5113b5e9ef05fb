package render

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatHugo = "hugo"
)

// Encoder renders a site configuration into one output file.
type Encoder interface {
	// Format is the format name used in configuration.
	Format() string
	// Filename is the output file name relative to the output directory.
	Filename() string
	Encode(cfg *nav.SiteConfig) ([]byte, error)
}

var encoders = map[string]Encoder{
	FormatJSON: jsonEncoder{},
	FormatYAML: yamlEncoder{},
	FormatTOML: tomlEncoder{},
	FormatHugo: hugoEncoder{},
}

// Formats returns the supported format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(encoders))
	for name := range encoders {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// EncoderFor returns the encoder registered for format.
func EncoderFor(format string) (Encoder, error) {
	enc, ok := encoders[format]
	if !ok {
		return nil, errors.RenderError("unknown output format").
			WithContext("format", format).
			WithContext("supported", Formats()).
			Build()
	}
	return enc, nil
}

type jsonEncoder struct{}

func (jsonEncoder) Format() string   { return FormatJSON }
func (jsonEncoder) Filename() string { return "config.json" }

func (jsonEncoder) Encode(cfg *nav.SiteConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewDocument(cfg)); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to encode JSON config").Build()
	}
	return buf.Bytes(), nil
}

type yamlEncoder struct{}

func (yamlEncoder) Format() string   { return FormatYAML }
func (yamlEncoder) Filename() string { return "config.yaml" }

func (yamlEncoder) Encode(cfg *nav.SiteConfig) ([]byte, error) {
	return marshalYAML(NewDocument(cfg))
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to encode YAML").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to encode YAML").Build()
	}
	return buf.Bytes(), nil
}

type tomlEncoder struct{}

func (tomlEncoder) Format() string   { return FormatTOML }
func (tomlEncoder) Filename() string { return "config.toml" }

// TOML has no tuple type, so head entries become an array of tables.
type tomlDocument struct {
	Title       string      `toml:"title"`
	Description string      `toml:"description,omitempty"`
	Head        []tomlHead  `toml:"head,omitempty"`
	ThemeConfig ThemeConfig `toml:"themeConfig"`
}

type tomlHead struct {
	Tag     string            `toml:"tag"`
	Attrs   map[string]string `toml:"attrs,omitempty"`
	Content string            `toml:"content,omitempty"`
}

func (tomlEncoder) Encode(cfg *nav.SiteConfig) ([]byte, error) {
	doc := NewDocument(cfg)
	out := tomlDocument{Title: doc.Title, Description: doc.Description, ThemeConfig: doc.ThemeConfig}
	for _, h := range doc.Head {
		out.Head = append(out.Head, tomlHead(h))
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to encode TOML config").Build()
	}
	return buf.Bytes(), nil
}

// File is one rendered output file.
type File struct {
	Name   string
	Format string
	Data   []byte
}

// Render encodes cfg in every requested format, in the order given, plus the head
// partial when requested.
func Render(cfg *nav.SiteConfig, formats []string, headPartial bool) ([]File, error) {
	files := make([]File, 0, len(formats)+1)
	for _, format := range formats {
		enc, err := EncoderFor(format)
		if err != nil {
			return nil, err
		}
		data, err := enc.Encode(cfg)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: enc.Filename(), Format: format, Data: data})
	}
	if headPartial {
		data, err := HeadPartial(cfg)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: HeadPartialFilename, Format: "html", Data: data})
	}
	return files, nil
}
