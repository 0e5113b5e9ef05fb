// Package render turns a built site configuration into the files a static-site
// renderer consumes: a renderer-native config document (JSON, YAML or TOML), a Hugo
// site configuration with menus, and an HTML head partial.
package render
