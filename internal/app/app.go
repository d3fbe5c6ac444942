package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/genbuildnum/internal/fsutil"
	"github.com/hyperifyio/genbuildnum/internal/gitinfo"
	"github.com/hyperifyio/genbuildnum/internal/template"
	"github.com/hyperifyio/genbuildnum/internal/version"
)

// outputPerm is applied to newly created headers.
const outputPerm = 0o644

// App generates one version header per Run.
type App struct {
	cfg Config
	git gitinfo.Runner
}

// Option customises an App.
type Option func(*App)

// WithRunner replaces the git runner, mainly for tests.
func WithRunner(r gitinfo.Runner) Option {
	return func(a *App) { a.git = r }
}

// Result summarises a run.
type Result struct {
	Tag        gitinfo.Tag
	Version    version.Version
	Descriptor string
	// Changed is true when the output was (or in dry-run, would be) replaced.
	Changed bool
	// Diff is the unified diff of the change; filled in dry-run and verbose runs.
	Diff string
}

// New validates cfg and fills in derived locations.
func New(cfg Config, opts ...Option) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	cfg = cfg.Resolve()
	a := &App{cfg: cfg, git: gitinfo.ExecRunner{Path: cfg.GitPath}}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// Config returns the resolved configuration.
func (a *App) Config() Config { return a.cfg }

// Run resolves the version, renders the template and writes the output
// when it changed. Any error aborts the run before the destination is
// touched.
func (a *App) Run(ctx context.Context) (Result, error) {
	var res Result

	tag, err := gitinfo.ResolveTag(ctx, a.git, gitinfo.Options{
		ToolDir:     a.cfg.ToolDir,
		RepoRoot:    a.cfg.RepoRoot,
		ReleaseFile: a.cfg.ReleaseFile,
	})
	if err != nil {
		return res, err
	}
	res.Tag = tag
	log.Info().Str("stage", "tag").Str("tag", tag.Name).Bool("git", tag.FromGit).Msg("resolved tag")

	md, err := gitinfo.ResolveBuild(ctx, a.git, a.cfg.ToolDir, tag)
	if err != nil {
		return res, err
	}
	res.Descriptor = md.Descriptor
	log.Debug().Str("stage", "build").Str("build", md.Build).Str("descriptor", md.Descriptor).Msg("resolved build metadata")

	v, err := version.Parse(tag.Name, md.Build)
	if err != nil {
		return res, err
	}
	res.Version = v
	log.Debug().Str("stage", "parse").Str("version", v.String()).Msg("parsed version")

	text, err := template.Load(a.cfg.TemplatePath)
	if err != nil {
		return res, fmt.Errorf("read template: %w", err)
	}
	out := template.Render(text, template.Values{
		SMPrefix: a.cfg.ShortPrefix,
		Prefix:   a.cfg.Prefix,
		Major:    v.Major,
		Minor:    v.Minor,
		Revision: v.Revision,
		Build:    v.Build,
		GitTag:   md.Descriptor,
	})
	if left := template.Unresolved(out); len(left) > 0 {
		if a.cfg.Strict {
			return res, &UnresolvedError{Template: a.cfg.TemplatePath, Tokens: left}
		}
		log.Warn().Str("stage", "render").Strs("tokens", left).Str("template", a.cfg.TemplatePath).Msg("unresolved placeholders left in output")
	}
	log.Debug().Str("stage", "render").Int("bytes", len(out)).Msg("rendered template")

	if a.cfg.DryRun || debugEnabled() {
		d, err := fsutil.Diff(a.cfg.OutputPath, out)
		if err != nil {
			return res, err
		}
		res.Diff = d
	}

	if a.cfg.DryRun {
		res.Changed = res.Diff != ""
		log.Info().Str("stage", "write").Str("out", a.cfg.OutputPath).Bool("changed", res.Changed).Msg("dry run; output not written")
		return res, nil
	}

	changed, err := fsutil.WriteIfChanged(a.cfg.OutputPath, out, outputPerm)
	if err != nil {
		return res, err
	}
	res.Changed = changed
	if changed {
		log.Info().Str("stage", "write").Str("out", a.cfg.OutputPath).Str("version", v.String()).Msg("wrote header")
		if res.Diff != "" {
			log.Debug().Str("stage", "write").Msg("header diff\n" + res.Diff)
		}
	} else {
		log.Info().Str("stage", "write").Str("out", a.cfg.OutputPath).Msg("header up to date")
	}

	if a.cfg.ManifestPath != "" {
		b, err := marshalManifestJSON(res, a.cfg.OutputPath, out)
		if err != nil {
			return res, fmt.Errorf("encode manifest: %w", err)
		}
		if _, err := fsutil.WriteIfChanged(a.cfg.ManifestPath, b, outputPerm); err != nil {
			return res, fmt.Errorf("write manifest: %w", err)
		}
		log.Debug().Str("stage", "write").Str("manifest", a.cfg.ManifestPath).Msg("wrote manifest")
	}
	return res, nil
}

func debugEnabled() bool {
	e := log.Debug()
	defer e.Discard()
	return e.Enabled()
}
