package validate

import (
	"encoding/json"
	"fmt"
)

// Severity indicates the importance level of a validation issue.
type Severity int

const (
	// SeverityInfo marks intentional or harmless conditions (placeholder groups, orphan pages).
	SeverityInfo Severity = iota
	// SeverityWarning marks issues that should be fixed but do not block publication.
	SeverityWarning
	// SeverityError marks issues that block publication.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the severity by name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Rule identifiers.
const (
	RuleLinkFormat  = "link-format"
	RuleLinkTarget  = "link-target"
	RuleGroupUnique = "group-unique"
	RuleGroupEmpty  = "group-empty"
	RuleEditPattern = "edit-pattern"
	RuleContentLink = "content-link"
	RuleOrphanPage  = "orphan-page"
)

// Issue is a single validation finding.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Subject  string   `json:"subject"` // where: `sidebar "Basics" #2`, a content path, ...
	Message  string   `json:"message"`
	Fix      string   `json:"fix,omitempty"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", i.Severity, i.Rule, i.Subject, i.Message)
}

// Result contains all issues found.
type Result struct {
	Issues       []Issue `json:"issues"`
	LinksChecked int     `json:"links_checked"`
	PagesIndexed int     `json:"pages_indexed"`
}

func (r *Result) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.Count(SeverityWarning) > 0
}

// Count returns the number of issues at the given severity.
func (r *Result) Count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// ByRule returns issues grouped by rule identifier.
func (r *Result) ByRule() map[string][]Issue {
	out := map[string][]Issue{}
	for _, issue := range r.Issues {
		out[issue.Rule] = append(out[issue.Rule], issue)
	}
	return out
}
