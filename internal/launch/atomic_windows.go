//go:build windows
// +build windows

package launch

import (
	"os"
)

func writeFile(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
