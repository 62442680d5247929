package platform

import (
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// Chmod sets permissions on path within fs. On Windows this is a no-op
// because Windows does not support Unix-style permission bits.
func Chmod(fs afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fs.Chmod(path, mode)
}
