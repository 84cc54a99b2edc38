//go:build windows

package sessions

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// writeAtomic writes to a temp file beside filename and renames it into place.
// renameio does not build on windows; os.Rename replaces the target there (MoveFileEx).
func writeAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".tmp*")
	if err != nil {
		return errors.Wrap(err, "writeAtomic CreateTemp")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writeAtomic Write")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writeAtomic Sync")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "writeAtomic Close")
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "writeAtomic Chmod")
	}
	return errors.Wrap(os.Rename(tmpName, filename), "writeAtomic Rename")
}
