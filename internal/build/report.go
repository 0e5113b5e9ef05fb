package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// ReportFilename is written next to the rendered outputs.
const ReportFilename = "build-report.json"

// Outcome is the final build state.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report captures what a build produced. Rendered outputs never embed it, so they
// stay byte-identical across runs.
type Report struct {
	SchemaVersion   int                `json:"schema_version"`
	BuildID         string             `json:"build_id"`
	Start           time.Time          `json:"start"`
	End             time.Time          `json:"end"`
	Outcome         Outcome            `json:"outcome"`
	Title           string             `json:"title"`
	Groups          int                `json:"groups"`
	Links           int                `json:"links"`
	PagesIndexed    int                `json:"pages_indexed"`
	EditLinkPattern string             `json:"edit_link_pattern,omitempty"`
	StageDurations  map[string]float64 `json:"stage_durations_ms"`
	Issues          map[string]int     `json:"issues"` // severity name -> count
	Outputs         []OutputFile       `json:"outputs"`
	Pages           []PageFingerprint  `json:"pages,omitempty"`
}

// OutputFile describes one written file.
type OutputFile struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Bytes  int    `json:"bytes"`
}

// PageFingerprint records the content fingerprint of an indexed page.
type PageFingerprint struct {
	Path        string `json:"path"`
	Link        string `json:"link"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

func newReport(id string, start time.Time) *Report {
	return &Report{
		SchemaVersion:  1,
		BuildID:        id,
		Start:          start,
		StageDurations: map[string]float64{},
		Issues:         map[string]int{},
		Outputs:        []OutputFile{},
	}
}

// Duration returns the wall time of the build.
func (r *Report) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("build=%s outcome=%s groups=%d links=%d pages=%d errors=%d warnings=%d outputs=%d duration=%s",
		r.BuildID, r.Outcome, r.Groups, r.Links, r.PagesIndexed,
		r.Issues["ERROR"], r.Issues["WARNING"], len(r.Outputs), r.Duration().Truncate(time.Millisecond))
}

// Persist writes the report as JSON into dir through a temporary file and a rename.
func (r *Report) Persist(dir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal build report").Build()
	}
	return writeAtomic(filepath.Join(dir, ReportFilename), append(data, '\n'))
}

// writeAtomic writes data to a temporary file in the target directory and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create temporary file").
			WithContext("path", path).
			Build()
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write file").WithContext("path", path).Build()
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write file").WithContext("path", path).Build()
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to set file mode").WithContext("path", path).Build()
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapError(err, errors.CategoryFileSystem, "atomic rename failed").WithContext("path", path).Build()
	}
	return nil
}
