package gateways

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"

	"github.com/ochairo/packwright/internal/domain/entities"
)

// CommitInfoReader reads the revision of the local working copy a benchmark runs in.
// Only the local repository is opened; nothing is fetched.
type CommitInfoReader struct{}

// NewCommitInfoReader creates a new commit info reader
func NewCommitInfoReader() *CommitInfoReader {
	return &CommitInfoReader{}
}

// Read returns commit information for the repository containing dir.
// A directory outside any repository yields (nil, nil).
func (r *CommitInfoReader) Read(dir string) (*entities.CommitInfo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	info := &entities.CommitInfo{
		ID:     head.Hash().String(),
		Time:   commit.Committer.When.UTC().Format(time.RFC3339),
		Author: commit.Author.Name,
		Branch: "(detached head)",
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	if wt, err := repo.Worktree(); err == nil {
		if status, err := wt.Status(); err == nil {
			info.Dirty = !status.IsClean()
		}
	}

	return info, nil
}
