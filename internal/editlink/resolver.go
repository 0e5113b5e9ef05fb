package editlink

import (
	stderrors "errors"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

const (
	defaultRemote = "origin"
	defaultBranch = "main"
)

// Resolve returns the edit link to publish. A configured pattern wins; otherwise,
// with detection enabled, the pattern is derived from the repository's origin remote.
// With neither, the authored edit link is returned unchanged.
func Resolve(cfg config.EditLinkConfig, authored nav.EditLink) (nav.EditLink, error) {
	if cfg.Pattern != "" {
		return nav.EditLink{Pattern: cfg.Pattern, Text: authored.Text}, nil
	}
	if !cfg.DetectFromGit {
		return authored, nil
	}

	remote, branch, err := inspectRepository(cfg.RepoPath)
	if err != nil {
		return nav.EditLink{}, err
	}
	if cfg.Branch != "" {
		branch = cfg.Branch
	}

	res := DefaultChain().Detect(DetectionContext{RemoteURL: remote, Branch: branch, DocsRoot: cfg.DocsRoot})
	if !res.Found || res.ForgeType == "" {
		return nav.EditLink{}, errors.GitError("origin remote has no web edit URL").
			WithContext("remote", remote).
			Build()
	}

	pattern := BuildPattern(res, branch, cfg.DocsRoot)
	slog.Debug("Derived edit link from git remote",
		logfields.URL(pattern),
		slog.String("forge", string(res.ForgeType)))
	return nav.EditLink{Pattern: pattern, Text: authored.Text}, nil
}

// inspectRepository returns the origin remote URL and the checked-out branch.
func inspectRepository(repoPath string) (string, string, error) {
	if repoPath == "" {
		repoPath = "."
	}
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", errors.WrapError(err, errors.CategoryGit, "failed to open git repository").
			WithContext("path", repoPath).
			Build()
	}

	remote, err := repo.Remote(defaultRemote)
	if err != nil {
		return "", "", errors.WrapError(err, errors.CategoryGit, "repository has no origin remote").
			WithContext("path", repoPath).
			Build()
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", errors.GitError("origin remote has no URL").WithContext("path", repoPath).Build()
	}

	return urls[0], currentBranch(repo), nil
}

// currentBranch reads HEAD without resolving it so unborn branches still report a name.
func currentBranch(repo *git.Repository) string {
	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		if !stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			slog.Debug("Unable to read HEAD", logfields.Error(err))
		}
		return defaultBranch
	}
	switch {
	case ref.Type() == plumbing.SymbolicReference && ref.Target().IsBranch():
		return ref.Target().Short()
	case ref.Name().IsBranch():
		return ref.Name().Short()
	default:
		// detached HEAD
		return defaultBranch
	}
}
