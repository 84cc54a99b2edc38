//go:build !windows

package sessions

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeAtomic replaces filename via renameio (temp file in the same dir, fsync, rename)
func writeAtomic(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
