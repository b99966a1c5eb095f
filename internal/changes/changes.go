// Package changes narrows a build to the components touched since a given revision.
package changes

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/goliatone/nwdi-cpd/internal/component"
)

// Detector lists the files changed in a repository.
type Detector interface {
	Changed(ctx context.Context, repoDir, since string) ([]string, error)
}

// RepositoryError wraps failures reading the repository.
type RepositoryError struct {
	Path      string
	Operation string
	Err       error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("changes: %s failed for %s: %v", e.Operation, e.Path, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// IsRepositoryError returns true if the error is a RepositoryError.
func IsRepositoryError(err error) bool {
	var target *RepositoryError
	return errors.As(err, &target)
}

// NewDetector returns a Detector backed by go-git.
func NewDetector() Detector {
	return &gitDetector{}
}

type gitDetector struct{}

// Changed returns the slash separated paths, relative to the repository root, that differ
// between the since revision and HEAD. Renames report both sides.
func (d *gitDetector) Changed(ctx context.Context, repoDir, since string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, &RepositoryError{Path: repoDir, Operation: "open", Err: err}
	}

	from, err := revisionTree(repo, since)
	if err != nil {
		return nil, &RepositoryError{Path: repoDir, Operation: "resolve " + since, Err: err}
	}
	to, err := revisionTree(repo, "HEAD")
	if err != nil {
		return nil, &RepositoryError{Path: repoDir, Operation: "resolve HEAD", Err: err}
	}

	diff, err := from.DiffContext(ctx, to)
	if err != nil {
		return nil, &RepositoryError{Path: repoDir, Operation: "diff", Err: err}
	}

	seen := make(map[string]struct{})
	paths := []string{}
	for _, change := range diff {
		for _, name := range []string{change.From.Name, change.To.Name} {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			paths = append(paths, name)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func revisionTree(repo *git.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}

// AffectedFilter accepts components whose Path contains at least one of paths.
// Components without a Path are never affected.
func AffectedFilter(paths []string) component.Filter {
	changed := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = normalize(p); p != "" {
			changed = append(changed, p)
		}
	}

	return func(c component.Component) bool {
		root := normalize(c.Path)
		if root == "" {
			return false
		}
		for _, p := range changed {
			if p == root || strings.HasPrefix(p, root+"/") {
				return true
			}
		}
		return false
	}
}

func normalize(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." || p == "/" {
		return ""
	}
	return strings.TrimPrefix(p, "./")
}
