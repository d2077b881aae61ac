package builder

import (
	"context"
	"fmt"

	"github.com/arthur-debert/homebuild/pkg/config"
	hberrors "github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/executor"
	"github.com/arthur-debert/homebuild/pkg/filesystem"
	"github.com/arthur-debert/homebuild/pkg/logging"
	"github.com/arthur-debert/homebuild/pkg/symlink"
	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/arthur-debert/homebuild/pkg/userscripts"
	"github.com/rs/zerolog"
)

// Phase names one step of the build
type Phase string

const (
	PhasePopulate Phase = "populate"
	PhaseLinkPre  Phase = "link-pre"
	PhaseRunBuild Phase = "run-build"
	PhaseLinkPost Phase = "link-post"
	PhaseLinkUser Phase = "link-user"
)

// Phases lists every phase in execution order
var Phases = []Phase{PhasePopulate, PhaseLinkPre, PhaseRunBuild, PhaseLinkPost, PhaseLinkUser}

// Installer installs user scripts; *userscripts.Linker is the real one
type Installer interface {
	Install(ctx context.Context, scripts []types.Script) error
}

// Options contains the collaborators of a Builder
type Options struct {
	Settings *config.Settings
	FS       types.FS
	// Runner defaults to a shell runner configured from Settings
	Runner executor.Runner
	// Installer defaults to a userscripts.Linker for Settings' bin directory
	Installer Installer
	// Logger defaults to the package component logger
	Logger *zerolog.Logger
}

// Builder runs the five build phases
type Builder struct {
	settings  *config.Settings
	fs        types.FS
	runner    executor.Runner
	installer Installer
	logger    zerolog.Logger
}

// New creates a new builder, filling unset options from the settings
func New(opts Options) *Builder {
	b := &Builder{
		settings:  opts.Settings,
		fs:        opts.FS,
		runner:    opts.Runner,
		installer: opts.Installer,
		logger:    logging.GetLogger("builder"),
	}

	if opts.Logger != nil {
		b.logger = *opts.Logger
	}
	if b.settings == nil {
		b.settings = config.Default()
	}
	if b.fs == nil {
		b.fs = filesystem.NewOS()
	}
	if b.runner == nil {
		b.runner = executor.New(executor.Options{
			Shell:   b.settings.Shell(),
			Timeout: b.settings.ScriptTimeout(),
		})
	}
	if b.installer == nil {
		b.installer = userscripts.New(b.fs, b.settings.UserScriptsBin())
	}
	return b
}

// Plan returns the queues a build of root would work through, without
// touching the filesystem.
func (b *Builder) Plan(root *types.ConfigEntity) Queues {
	return Populate(root, PopulateOptions{VisitOnce: b.settings.VisitOnce()})
}

// Build runs every phase against root. The returned error names the phase
// that failed and wraps the underlying SYMLINK, BUILD_SCRIPT or other error.
func (b *Builder) Build(ctx context.Context, root *types.ConfigEntity) error {
	b.logger.Info().Msg("Building home directory")

	b.logger.Debug().Msg("Populating queues")
	done := logging.LogOperationStart(b.logger, string(PhasePopulate))
	q := b.Plan(root)
	done()
	b.logger.Debug().
		Int("pre", len(q.Pre)).
		Int("build", len(q.Build)).
		Int("post", len(q.Post)).
		Int("user", len(q.User)).
		Msg("Queues populated")

	steps := []struct {
		phase Phase
		msg   string
		run   func(context.Context, Queues) error
	}{
		{PhaseLinkPre, "Pre-linking files", func(ctx context.Context, q Queues) error { return b.linkFiles(ctx, q.Pre) }},
		{PhaseRunBuild, "Running build scripts", b.runBuildScripts},
		{PhaseLinkPost, "Post-linking files", func(ctx context.Context, q Queues) error { return b.linkFiles(ctx, q.Post) }},
		{PhaseLinkUser, "Linking user scripts", func(ctx context.Context, q Queues) error { return b.installer.Install(ctx, q.User) }},
	}

	for _, step := range steps {
		b.logger.Info().Str("phase", string(step.phase)).Msg(step.msg)
		if err := step.run(ctx, q); err != nil {
			b.logger.Error().Err(err).Str("phase", string(step.phase)).Msg("Build aborted")
			return fmt.Errorf("%s: %w", step.phase, err)
		}
	}

	return nil
}

func (b *Builder) linkFiles(ctx context.Context, links []types.FileLink) error {
	for _, link := range links {
		if err := checkContext(ctx); err != nil {
			return err
		}
		b.logger.Info().Str("link", link.Name).Msgf("Linking %s", link.Name)
		if err := symlink.Force(b.fs, link.Source, link.Destination); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) runBuildScripts(ctx context.Context, q Queues) error {
	for _, script := range q.Build {
		if err := checkContext(ctx); err != nil {
			return err
		}
		b.logger.Info().
			Str("script", script.Name).
			Int("stage", script.Stage).
			Msgf("Running build script: %s", script.Name)
		if err := b.runner.Run(ctx, script); err != nil {
			return err
		}
	}
	return nil
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return hberrors.Wrap(err, hberrors.ErrCancelled, "build cancelled")
	}
	return nil
}
