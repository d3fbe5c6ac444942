// Package gitinfo resolves the release tag and build metadata of a checkout,
// falling back to a plain version file when git cannot answer.
package gitinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/genbuildnum/internal/fsutil"
)

// ReleaseFileName is the fallback version file looked up in the tool directory.
const ReleaseFileName = "release_ver"

// ErrEmptyReleaseFile is wrapped by TagResolutionError when the fallback
// file exists but holds nothing but whitespace.
var ErrEmptyReleaseFile = errors.New("release file is empty")

// Tag is a resolved version tag and where it came from.
type Tag struct {
	Name string
	// FromGit is true when Name came from git describe rather than the
	// fallback file; only then is build metadata queried.
	FromGit bool
}

// BuildMetadata is the commit distance from the tag and the descriptor
// string "<tag>-<build>-g<hash>".
type BuildMetadata struct {
	Build      string
	Descriptor string
}

// Options locate the repository and the fallback file.
type Options struct {
	// ToolDir is the working directory for git commands.
	ToolDir string
	// RepoRoot is checked for a .git entry.
	RepoRoot string
	// ReleaseFile is read when git yields no tag.
	ReleaseFile string
}

// TagResolutionError means neither git nor the fallback file produced a tag.
type TagResolutionError struct {
	Path string
	Err  error
}

func (e *TagResolutionError) Error() string {
	return fmt.Sprintf("resolve tag from %s: %v", e.Path, e.Err)
}

func (e *TagResolutionError) Unwrap() error { return e.Err }

// HasRepository reports whether root contains a .git entry. A file counts
// too, which is how worktrees and submodules link to their git directory.
func HasRepository(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}

// ResolveTag prefers the nearest tag reported by git and otherwise reads
// the fallback file. Git is consulted only when the repository root has a
// .git entry and the runner is available.
func ResolveTag(ctx context.Context, r Runner, opts Options) (Tag, error) {
	if HasRepository(opts.RepoRoot) && r.Available() {
		out, err := r.Run(ctx, opts.ToolDir, "describe", "--tags", "--abbrev=0")
		if err != nil {
			log.Debug().Err(err).Str("stage", "tag").Msg("git describe failed; using release file")
		} else if out != "" {
			log.Debug().Str("stage", "tag").Str("tag", out).Msg("tag from git")
			return Tag{Name: out, FromGit: true}, nil
		}
	}

	b, err := fsutil.ReadText(opts.ReleaseFile)
	if err != nil {
		log.Error().Err(err).Str("path", opts.ReleaseFile).Msg("Can't open " + ReleaseFileName)
		return Tag{}, &TagResolutionError{Path: opts.ReleaseFile, Err: err}
	}
	name := strings.Trim(string(b), cutset)
	if name == "" {
		return Tag{}, &TagResolutionError{Path: opts.ReleaseFile, Err: ErrEmptyReleaseFile}
	}
	log.Debug().Str("stage", "tag").Str("tag", name).Str("path", opts.ReleaseFile).Msg("tag from release file")
	return Tag{Name: name}, nil
}

// ResolveBuild counts the commits from tag to HEAD and builds the git
// descriptor. Tags from the fallback file get build "0" and an empty
// descriptor without any git invocation.
func ResolveBuild(ctx context.Context, r Runner, dir string, tag Tag) (BuildMetadata, error) {
	if !tag.FromGit {
		return BuildMetadata{Build: "0"}, nil
	}
	build, err := r.Run(ctx, dir, "rev-list", "--count", tag.Name+"..HEAD")
	if err != nil {
		return BuildMetadata{}, fmt.Errorf("count commits since %s: %w", tag.Name, err)
	}
	hash, err := r.Run(ctx, dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return BuildMetadata{}, fmt.Errorf("abbreviate HEAD: %w", err)
	}
	return BuildMetadata{
		Build:      build,
		Descriptor: fmt.Sprintf("%s-%s-g%s", tag.Name, build, hash),
	}, nil
}
