package app

import (
	"path/filepath"
	"strings"

	"github.com/hyperifyio/genbuildnum/internal/gitinfo"
	"github.com/hyperifyio/genbuildnum/internal/template"
)

// Config holds runtime configuration for the generator.
type Config struct {
	OutputPath     string
	Prefix         string
	ShortPrefix    string
	// PrefixSet and ShortPrefixSet mark values given explicitly on the
	// command line; those are accepted even when empty.
	PrefixSet      bool
	ShortPrefixSet bool

	// Locations. Empty values are derived from ToolDir by Resolve.
	ToolDir      string
	RepoRoot     string
	TemplatePath string
	ReleaseFile  string
	GitPath      string
	// ManifestPath, when set, receives a JSON record of the run.
	ManifestPath string

	// Behavior
	DryRun  bool
	Strict  bool
	Verbose bool
}

// Resolve returns a copy of cfg with derived locations filled in: the
// repository root is the parent of the tool directory, and the template
// and release file sit inside the tool directory.
func (cfg Config) Resolve() Config {
	if strings.TrimSpace(cfg.ToolDir) == "" {
		cfg.ToolDir = "."
	}
	if cfg.RepoRoot == "" {
		cfg.RepoRoot = filepath.Join(cfg.ToolDir, "..")
	}
	if cfg.TemplatePath == "" {
		cfg.TemplatePath = filepath.Join(cfg.ToolDir, template.DefaultFileName)
	}
	if cfg.ReleaseFile == "" {
		cfg.ReleaseFile = filepath.Join(cfg.ToolDir, gitinfo.ReleaseFileName)
	}
	return cfg
}

// ValidateConfig reports the first missing required setting as a UsageError.
// A prefix marked as set is never missing, so an explicit "" renders as
// an empty substitution.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return &UsageError{Msg: "missing output file"}
	}
	if !cfg.PrefixSet && strings.TrimSpace(cfg.Prefix) == "" {
		return &UsageError{Msg: "missing prefix"}
	}
	if !cfg.ShortPrefixSet && strings.TrimSpace(cfg.ShortPrefix) == "" {
		return &UsageError{Msg: "missing short prefix"}
	}
	return nil
}
