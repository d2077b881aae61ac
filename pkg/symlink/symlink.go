package symlink

import (
	"errors"
	"io/fs"
	"os"

	hberrors "github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/logging"
	"github.com/arthur-debert/homebuild/pkg/paths"
	"github.com/arthur-debert/homebuild/pkg/types"
)

// Force ensures destination is a symlink pointing at source. Both paths
// go through paths.Expand first, so ~/ and $VAR forms are accepted.
// Any failure is returned as an ErrSymlink error carrying both paths.
func Force(fsys types.FS, source, destination string) error {
	source, destination = paths.Expand(source), paths.Expand(destination)
	logger := logging.GetLogger("symlink")
	logger.Debug().
		Str("source", source).
		Str("destination", destination).
		Msg("Symlink")

	info, err := fsys.Lstat(destination)
	switch {
	case err == nil:
		if err := removeExisting(fsys, destination, info); err != nil {
			return hberrors.NewSymlinkError(source, destination, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return hberrors.NewSymlinkError(source, destination, err)
	}

	if err := fsys.Symlink(source, destination); err != nil {
		return hberrors.NewSymlinkError(source, destination, err)
	}
	return nil
}

// removeExisting removes whatever sits at path; directories go with their contents
func removeExisting(fsys types.FS, path string, info fs.FileInfo) error {
	if info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
		return fsys.RemoveAll(path)
	}
	return fsys.Remove(path)
}

// LinkState describes what currently occupies a link destination
type LinkState string

const (
	// StateMissing means nothing exists at the destination
	StateMissing LinkState = "missing"
	// StateLinked means the destination is a symlink to the expected source
	StateLinked LinkState = "linked"
	// StateWrongTarget means the destination is a symlink to something else
	StateWrongTarget LinkState = "wrong-target"
	// StateOccupied means a regular file or directory sits at the destination
	StateOccupied LinkState = "occupied"
)

// Check reports the state of destination relative to the link Force would create.
func Check(fsys types.FS, source, destination string) (LinkState, error) {
	source, destination = paths.Expand(source), paths.Expand(destination)
	info, err := fsys.Lstat(destination)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StateMissing, nil
		}
		return "", hberrors.Wrapf(err, hberrors.ErrFileAccess, "cannot inspect %s", destination)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return StateOccupied, nil
	}

	target, err := fsys.Readlink(destination)
	if err != nil {
		return "", hberrors.Wrapf(err, hberrors.ErrFileAccess, "cannot read link %s", destination)
	}
	if target != source {
		return StateWrongTarget, nil
	}
	return StateLinked, nil
}
