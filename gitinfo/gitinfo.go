// Package gitinfo probes the git repository enclosing a workspace for the
// source-control metadata carried by a dump's Source vertex: repository
// name, revision, and branch.
package gitinfo

import (
	"fmt"
	"net/url"
	"os/exec"
	"strings"
)

// Info is the source-control metadata for a workspace.
type Info struct {
	Repository string
	Revision   string
	Branch     string
	// Version is the work tree commit's nearest tag, or a short revhash if
	// no tag points at HEAD. Populated via InferModuleVersion.
	Version string
}

// Infer probes the git repository rooted at (or enclosing) dir. Any single
// probe failing (no remote configured, detached HEAD with no branch name)
// leaves the corresponding field empty rather than failing the whole call;
// only a missing .git entirely is fatal.
func Infer(dir string) (*Info, error) {
	if _, err := run(dir, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	info := &Info{}

	if remote, err := run(dir, "remote", "get-url", "origin"); err == nil {
		if repo, err := parseRemote(remote); err == nil {
			info.Repository = repo
		}
	}

	if rev, err := run(dir, "rev-parse", "HEAD"); err == nil {
		info.Revision = rev
	}

	if branch, err := run(dir, "rev-parse", "--abbrev-ref", "HEAD"); err == nil && branch != "HEAD" {
		info.Branch = branch
	}

	if version, err := InferModuleVersion(dir); err == nil {
		info.Version = version
	}

	return info, nil
}

// InferModuleVersion returns the version of the module rooted at dir: the
// work tree commit's tag if one points at HEAD, otherwise a 12-character
// short revision.
func InferModuleVersion(dir string) (string, error) {
	if tag, err := run(dir, "tag", "-l", "--points-at", "HEAD"); err == nil && tag != "" {
		return tag, nil
	}

	commit, err := run(dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("get current commit: %w", err)
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return commit, nil
}

// TopLevel returns the root directory of the git repository enclosing dir.
func TopLevel(dir string) (string, error) {
	return run(dir, "rev-parse", "--show-toplevel")
}

// parseRemote converts a git origin URL into a host/path repository name,
// handling both the "git@host:owner/repo.git" and "https://host/owner/repo.git"
// remote forms.
func parseRemote(remoteURL string) (string, error) {
	if strings.HasPrefix(remoteURL, "git@") {
		if parts := strings.SplitN(remoteURL, ":", 2); len(parts) == 2 {
			return strings.TrimPrefix(parts[0], "git@") + "/" + strings.TrimSuffix(parts[1], ".git"), nil
		}
	}

	if u, err := url.Parse(remoteURL); err == nil && u.Host != "" {
		return u.Hostname() + strings.TrimSuffix(u.Path, ".git"), nil
	}

	return "", fmt.Errorf("unrecognized remote URL: %s", remoteURL)
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}
