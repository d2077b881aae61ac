// Package userscripts installs user scripts into the user bin directory.
// Each script's source is made executable and symlinked under its base name.
package userscripts

import (
	"context"
	"io/fs"
	"path/filepath"

	hberrors "github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/logging"
	"github.com/arthur-debert/homebuild/pkg/paths"
	"github.com/arthur-debert/homebuild/pkg/symlink"
	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/rs/zerolog"
)

const (
	// DirMode is used when the bin directory has to be created
	DirMode fs.FileMode = 0777
	// ScriptMode is applied to every user script source
	ScriptMode fs.FileMode = 0755
)

// Linker installs user scripts into BinDir
type Linker struct {
	fs     types.FS
	binDir string
	logger zerolog.Logger
}

// New creates a linker for binDir, which may start with ~ or contain $VARS
func New(fsys types.FS, binDir string) *Linker {
	return &Linker{
		fs:     fsys,
		binDir: binDir,
		logger: logging.GetLogger("userscripts"),
	}
}

// Install links every script into the bin directory, in order.
// The first failure is returned and later scripts are left untouched.
func (l *Linker) Install(ctx context.Context, scripts []types.Script) error {
	dir, err := l.ResolveDir()
	if err != nil {
		return err
	}

	l.logger.Warn().
		Str("dir", dir).
		Bool("in_path", paths.InPath(dir)).
		Msgf("Don't forget to add %s to your PATH", l.binDir)

	if err := l.fs.MkdirAll(dir, DirMode); err != nil {
		return hberrors.Wrapf(err, hberrors.ErrDirCreate, "cannot create user scripts directory %s", dir).
			WithDetail("dir", dir)
	}

	for _, script := range scripts {
		if err := ctx.Err(); err != nil {
			return hberrors.Wrap(err, hberrors.ErrCancelled, "user script installation cancelled")
		}
		l.logger.Info().Str("script", script.Name).Msg("Linking user script")

		if err := l.installOne(dir, script); err != nil {
			return err
		}
	}
	return nil
}

// ResolveDir returns the absolute bin directory
func (l *Linker) ResolveDir() (string, error) {
	return paths.Abs(l.binDir)
}

// Destination is where script ends up inside dir
func Destination(dir string, script types.Script) string {
	return filepath.Join(dir, filepath.Base(script.Source))
}

func (l *Linker) installOne(dir string, script types.Script) error {
	source := paths.Expand(script.Source)

	if err := l.fs.Chmod(source, ScriptMode); err != nil {
		return hberrors.Wrapf(err, hberrors.ErrPermission, "cannot make user script %q executable", script.Name).
			WithDetail("source", source)
	}

	return symlink.Force(l.fs, source, Destination(dir, script))
}
