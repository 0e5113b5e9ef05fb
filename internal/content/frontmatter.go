package content

import (
	"bytes"
	stderrors "errors"

	"gopkg.in/yaml.v3"
)

// errMissingClosingDelimiter indicates the document opened a YAML frontmatter
// block but never closed it.
var errMissingClosingDelimiter = stderrors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// splitFrontmatter separates `---` delimited YAML frontmatter from the Markdown body.
// Documents without frontmatter return a nil frontmatter and the full input as body.
func splitFrontmatter(content []byte) (frontmatter []byte, body []byte, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the final line without trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			return content[start : len(content)-len("---")], []byte{}, nil
		}
		return nil, nil, errMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], nil
}

// parseFrontmatter decodes raw YAML frontmatter into a map. Empty input yields an empty map.
func parseFrontmatter(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
