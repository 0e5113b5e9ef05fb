// Package editlink derives the edit link pattern for the site, either from
// configuration or from the git repository the documentation lives in.
package editlink

import (
	"fmt"
	"net/url"
	"strings"
)

// ForgeType identifies a hosting platform and its edit URL layout.
type ForgeType string

const (
	ForgeGitHub    ForgeType = "github"
	ForgeGitLab    ForgeType = "gitlab"
	ForgeForgejo   ForgeType = "forgejo"
	ForgeBitbucket ForgeType = "bitbucket"
)

// DetectionContext holds what detectors inspect.
type DetectionContext struct {
	RemoteURL string
	Branch    string
	DocsRoot  string
}

// DetectionResult contains the result of forge detection.
type DetectionResult struct {
	ForgeType ForgeType
	BaseURL   string
	FullName  string
	Found     bool
}

// ForgeDetector determines forge details from a remote URL.
type ForgeDetector interface {
	Detect(ctx DetectionContext) DetectionResult
	Name() string
}

// DetectorChain runs detectors in order until one succeeds.
type DetectorChain struct {
	detectors []ForgeDetector
}

// NewDetectorChain creates an empty chain.
func NewDetectorChain() *DetectorChain {
	return &DetectorChain{}
}

// DefaultChain returns the chain used by Resolve.
func DefaultChain() *DetectorChain {
	return NewDetectorChain().Add(localPathDetector{}).Add(HeuristicDetector{})
}

// Add appends a detector to the chain.
func (dc *DetectorChain) Add(detector ForgeDetector) *DetectorChain {
	dc.detectors = append(dc.detectors, detector)
	return dc
}

// Detect runs through the chain of detectors until one succeeds. A detector may
// also stop the chain by returning a result with an empty ForgeType and Found=true.
func (dc *DetectorChain) Detect(ctx DetectionContext) DetectionResult {
	for _, detector := range dc.detectors {
		if result := detector.Detect(ctx); result.Found {
			return result
		}
	}
	return DetectionResult{}
}

// localPathDetector rejects remotes that point at the local filesystem; they have no web edit URL.
type localPathDetector struct{}

func (localPathDetector) Name() string { return "local-path" }

func (localPathDetector) Detect(ctx DetectionContext) DetectionResult {
	u := ctx.RemoteURL
	for _, prefix := range []string{"http://", "https://", "ssh://", "git://", "git@"} {
		if strings.HasPrefix(u, prefix) {
			return DetectionResult{}
		}
	}
	return DetectionResult{Found: true}
}

// HeuristicDetector detects forge information from hostname patterns.
type HeuristicDetector struct{}

// Name returns the detector name.
func (HeuristicDetector) Name() string { return "heuristic" }

// Detect determines forge type, base URL and owner/repo from the remote URL.
func (HeuristicDetector) Detect(ctx DetectionContext) DetectionResult {
	if ctx.RemoteURL == "" {
		return DetectionResult{}
	}
	u, err := url.Parse(NormalizeRemoteURL(ctx.RemoteURL))
	if err != nil || u.Host == "" {
		return DetectionResult{}
	}
	fullName := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")
	if fullName == "" || !strings.Contains(fullName, "/") {
		return DetectionResult{}
	}

	scheme := u.Scheme
	if scheme != "http" {
		scheme = "https"
	}
	return DetectionResult{
		ForgeType: forgeFromHost(u.Hostname()),
		BaseURL:   fmt.Sprintf("%s://%s", scheme, u.Host),
		FullName:  fullName,
		Found:     true,
	}
}

func forgeFromHost(host string) ForgeType {
	switch {
	case strings.Contains(host, "github."):
		return ForgeGitHub
	case strings.Contains(host, "gitlab."):
		return ForgeGitLab
	case strings.Contains(host, "bitbucket."):
		return ForgeBitbucket
	default:
		// self-hosted Forgejo and Gitea share GitHub's layout
		return ForgeForgejo
	}
}

// NormalizeRemoteURL converts scp-style and ssh:// remotes to https URLs and drops
// credentials and the port of ssh remotes.
func NormalizeRemoteURL(remote string) string {
	remote = strings.TrimSpace(remote)
	if rest, ok := strings.CutPrefix(remote, "git@"); ok {
		if host, path, found := strings.Cut(rest, ":"); found {
			return "https://" + host + "/" + strings.TrimPrefix(path, "/")
		}
		return remote
	}
	if strings.HasPrefix(remote, "ssh://") || strings.HasPrefix(remote, "git://") {
		u, err := url.Parse(remote)
		if err != nil {
			return remote
		}
		return "https://" + u.Hostname() + u.Path
	}
	if u, err := url.Parse(remote); err == nil && u.User != nil {
		u.User = nil
		return u.String()
	}
	return remote
}

// BuildPattern assembles the edit link pattern for a detected forge.
func BuildPattern(res DetectionResult, branch, docsRoot string) string {
	base := strings.TrimSuffix(res.BaseURL, "/") + "/" + res.FullName
	prefix := strings.Trim(docsRoot, "/")
	if prefix != "" && prefix != "." {
		prefix += "/"
	} else {
		prefix = ""
	}
	switch res.ForgeType {
	case ForgeGitLab:
		return fmt.Sprintf("%s/-/edit/%s/%s:path", base, branch, prefix)
	case ForgeBitbucket:
		return fmt.Sprintf("%s/src/%s/%s:path?mode=edit", base, branch, prefix)
	default:
		return fmt.Sprintf("%s/edit/%s/%s:path", base, branch, prefix)
	}
}
