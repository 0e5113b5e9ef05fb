package validate

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/content"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// Rule checks one aspect of a site configuration.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string
	// Check appends its findings to the result.
	Check(in Input, r *Result)
}

// Input is what rules inspect. Content may be nil when no content tree is available,
// in which case content-dependent rules are skipped.
type Input struct {
	Site    *nav.SiteConfig
	Content *content.Index
}

// Validator runs a fixed set of rules in order.
type Validator struct {
	rules []Rule
}

// New returns a validator with the default rule set.
func New() *Validator {
	return &Validator{rules: DefaultRules()}
}

// WithRules returns a validator running only the given rules.
func WithRules(rules ...Rule) *Validator {
	return &Validator{rules: rules}
}

// DefaultRules returns every built-in rule.
func DefaultRules() []Rule {
	return []Rule{
		linkFormatRule{},
		linkTargetRule{},
		groupUniqueRule{},
		groupEmptyRule{},
		editPatternRule{},
		contentLinkRule{},
		orphanPageRule{},
	}
}

// Validate runs every rule. The result's issue order follows rule order, then
// the navigation's render order, so output is deterministic.
func (v *Validator) Validate(in Input) *Result {
	r := &Result{Issues: []Issue{}}
	if in.Site != nil {
		r.LinksChecked = len(in.Site.Links())
	}
	if in.Content != nil {
		r.PagesIndexed = in.Content.Len()
	}
	for _, rule := range v.rules {
		rule.Check(in, r)
	}
	return r
}

type linkFormatRule struct{}

func (linkFormatRule) Name() string { return RuleLinkFormat }

func (linkFormatRule) Check(in Input, r *Result) {
	if in.Site == nil {
		return
	}
	for _, ref := range in.Site.Links() {
		link := ref.Item.Link
		if link != "" && strings.HasPrefix(link, "/") {
			continue
		}
		r.add(Issue{
			Rule:     RuleLinkFormat,
			Severity: SeverityError,
			Subject:  ref.Location(),
			Message:  fmt.Sprintf("link %q must be a non-empty site path beginning with \"/\"", link),
			Fix:      "use an absolute site path such as /pages/intro-and-motivation",
		})
	}
}

type linkTargetRule struct{}

func (linkTargetRule) Name() string { return RuleLinkTarget }

func (linkTargetRule) Check(in Input, r *Result) {
	if in.Site == nil || in.Content == nil {
		return
	}
	for _, ref := range in.Site.Links() {
		if !strings.HasPrefix(ref.Item.Link, "/") {
			continue // reported by link-format
		}
		if _, ok := in.Content.Lookup(ref.Item.Link); ok {
			continue
		}
		r.add(Issue{
			Rule:     RuleLinkTarget,
			Severity: SeverityError,
			Subject:  ref.Location(),
			Message:  fmt.Sprintf("%q (%s) does not resolve to a content document", ref.Item.Text, ref.Item.Link),
			Fix:      fmt.Sprintf("create %s.md under the content directory or fix the link", strings.TrimSuffix(ref.Item.Link, "/")),
		})
	}
}

type groupUniqueRule struct{}

func (groupUniqueRule) Name() string { return RuleGroupUnique }

func (groupUniqueRule) Check(in Input, r *Result) {
	if in.Site == nil {
		return
	}
	first := map[string]int{}
	for i, g := range in.Site.Sidebar {
		key := strings.ToLower(strings.TrimSpace(g.Text))
		if prev, ok := first[key]; ok {
			r.add(Issue{
				Rule:     RuleGroupUnique,
				Severity: SeverityWarning,
				Subject:  fmt.Sprintf("sidebar group #%d", i+1),
				Message:  fmt.Sprintf("group %q repeats group #%d", g.Text, prev+1),
				Fix:      "merge the groups or rename one of them",
			})
			continue
		}
		first[key] = i
	}
}

type groupEmptyRule struct{}

func (groupEmptyRule) Name() string { return RuleGroupEmpty }

func (groupEmptyRule) Check(in Input, r *Result) {
	if in.Site == nil {
		return
	}
	for _, g := range in.Site.Sidebar {
		if !g.Placeholder() {
			continue
		}
		r.add(Issue{
			Rule:     RuleGroupEmpty,
			Severity: SeverityInfo,
			Subject:  fmt.Sprintf("sidebar %q", g.Text),
			Message:  "placeholder group renders as an empty collapsed section",
		})
	}
}

type editPatternRule struct{}

func (editPatternRule) Name() string { return RuleEditPattern }

func (editPatternRule) Check(in Input, r *Result) {
	if in.Site == nil {
		return
	}
	if n := strings.Count(in.Site.EditLink.Pattern, nav.PathPlaceholder); n != 1 {
		r.add(Issue{
			Rule:     RuleEditPattern,
			Severity: SeverityError,
			Subject:  "edit_link.pattern",
			Message:  fmt.Sprintf("pattern must contain exactly one %s placeholder, found %d", nav.PathPlaceholder, n),
		})
	}
}

type contentLinkRule struct{}

func (contentLinkRule) Name() string { return RuleContentLink }

func (contentLinkRule) Check(in Input, r *Result) {
	if in.Content == nil {
		return
	}
	for _, p := range in.Content.Pages() {
		for _, dest := range p.Links {
			if !content.IsInternal(dest) || !isDocumentLink(dest) {
				continue
			}
			target := content.ResolveFrom(p.Path, dest)
			if target == "" {
				continue
			}
			if _, ok := in.Content.Lookup(target); ok {
				continue
			}
			r.add(Issue{
				Rule:     RuleContentLink,
				Severity: SeverityWarning,
				Subject:  p.Path,
				Message:  fmt.Sprintf("link %q resolves to %s which is not a content document", dest, target),
			})
		}
	}
}

// isDocumentLink filters out asset references (images, downloads) that live outside the index.
func isDocumentLink(dest string) bool {
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		dest = dest[:i]
	}
	last := dest[strings.LastIndex(dest, "/")+1:]
	dot := strings.LastIndex(last, ".")
	if dot < 0 {
		return true
	}
	switch strings.ToLower(last[dot:]) {
	case ".md", ".markdown", ".html":
		return true
	}
	return false
}

type orphanPageRule struct{}

func (orphanPageRule) Name() string { return RuleOrphanPage }

func (orphanPageRule) Check(in Input, r *Result) {
	if in.Site == nil || in.Content == nil {
		return
	}
	linked := map[string]bool{}
	for _, ref := range in.Site.Links() {
		linked[content.NormalizeLink(ref.Item.Link)] = true
	}
	for _, p := range in.Content.Pages() {
		if linked[content.NormalizeLink(p.Link)] {
			continue
		}
		r.add(Issue{
			Rule:     RuleOrphanPage,
			Severity: SeverityInfo,
			Subject:  p.Path,
			Message:  fmt.Sprintf("page %s is not reachable from the navigation", p.Link),
			Fix:      "add it to a sidebar group or remove it",
		})
	}
}
