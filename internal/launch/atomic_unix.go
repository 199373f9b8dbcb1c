//go:build !windows
// +build !windows

package launch

import (
	"os"
	"path/filepath"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/google/renameio/v2"
)

// writeFile replaces filename through a temp file and rename, so readers
// never see a partial document. A symlinked filename is written through to
// its target, and an existing file keeps its mode and must be writable.
func writeFile(filename string, data []byte, perm os.FileMode) error {
	target, err := resolveLink(filename)
	if err != nil {
		return err
	}

	if _, err = os.Stat(target); err == nil {
		// rename would bypass the file's own permissions
		f, err := os.OpenFile(target, os.O_WRONLY, 0)
		if err != nil {
			return err
		}
		_ = f.Close()
	} else if !os.IsNotExist(err) {
		return err
	}

	return renameio.WriteFile(target, data, perm, renameio.WithExistingPermissions())
}

// resolveLink follows filename to the file that is actually written. A
// dangling link resolves to the path it points at.
func resolveLink(filename string) (string, error) {
	info, err := os.Lstat(filename)
	if os.IsNotExist(err) {
		return filename, nil
	}
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return filename, nil
	}

	if target, err := filepath.EvalSymlinks(filename); err == nil {
		return target, nil
	}

	seen := map[string]bool{}
	for {
		if seen[filename] {
			return "", errors.Wrapf(syscall.ELOOP, "resolve %s", filename)
		}
		seen[filename] = true

		link, err := os.Readlink(filename)
		if err != nil {
			return "", errors.Wrapf(err, "resolve %s", filename)
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(filename), link)
		}
		filename = link

		info, err = os.Lstat(filename)
		if os.IsNotExist(err) || (err == nil && info.Mode()&os.ModeSymlink == 0) {
			return filename, nil
		}
		if err != nil {
			return "", err
		}
	}
}
