package gitinfo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// cutset is stripped from both ends of git output and the fallback file.
const cutset = "\n\r\t "

// Runner executes git subcommands.
type Runner interface {
	// Available reports whether a git executable can be invoked at all.
	Available() bool
	// Run executes git with args in dir and returns stdout with surrounding
	// whitespace removed.
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs the git binary found at Path, or "git" on PATH.
type ExecRunner struct {
	Path string
}

func (r ExecRunner) binary() string {
	if strings.TrimSpace(r.Path) != "" {
		return r.Path
	}
	return "git"
}

// Available looks the binary up without running it.
func (r ExecRunner) Available() bool {
	_, err := exec.LookPath(r.binary())
	return err == nil
}

func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.binary(), args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &GitError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return strings.Trim(stdout.String(), cutset), nil
}

// GitError describes a git invocation that exited unsuccessfully.
type GitError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *GitError) Unwrap() error { return e.Err }
