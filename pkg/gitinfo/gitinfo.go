// Package gitinfo resolves the repository context of a scanned directory:
// the repository root and the HEAD revision, so scan results can be pinned
// to a commit.
package gitinfo

import (
	"errors"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Info identifies the repository state at scan time.
type Info struct {
	Root   string `json:"root"`
	Commit string `json:"commit"`
	Branch string `json:"branch"`
	Dirty  bool   `json:"dirty"`
}

// Resolve walks up from dir to the enclosing repository and reads HEAD.
// A directory outside any repository returns (nil, nil); scans of plain
// trees are normal, not an error.
func Resolve(dir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	info := &Info{}
	if wt, err := repo.Worktree(); err == nil {
		info.Root = wt.Filesystem.Root()
		if status, err := wt.Status(); err == nil {
			info.Dirty = !status.IsClean()
		}
	}
	if info.Root == "" {
		info.Root = filepath.Clean(dir)
	}

	head, err := repo.Head()
	if err != nil {
		// Fresh repository with no commits yet.
		return info, nil
	}
	info.Commit = head.Hash().String()
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info, nil
}
