package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyLink       = "link"
	KeyGroup      = "group"
	KeyFormat     = "format"
	KeyRule       = "rule"
	KeyCount      = "count"
	KeyAddr       = "addr"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func File(f string) slog.Attr { return slog.String(KeyFile, f) }
func Link(l string) slog.Attr { return slog.String(KeyLink, l) }
func Group(g string) slog.Attr { return slog.String(KeyGroup, g) }
func Format(f string) slog.Attr { return slog.String(KeyFormat, f) }
func Rule(r string) slog.Attr { return slog.String(KeyRule, r) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func Addr(a string) slog.Attr { return slog.String(KeyAddr, a) }
func Method(m string) slog.Attr { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func URL(u string) slog.Attr { return slog.String(KeyURL, u) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
