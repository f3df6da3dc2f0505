package path

import (
	"errors"
	"io"
	"os"
	"strings"
)

// Exists reports whether an entry named p exists. Symlinks are not
// followed, so a dangling link counts as existing.
func Exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

// IsFile reports whether p exists and is a regular file.
func IsFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

// IsDir reports whether p exists and is a directory.
func IsDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

// IsEmptyDir reports whether the directory p has no entries.
func IsEmptyDir(p string) (bool, error) {
	f, err := os.Open(p)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// Unquote strips one pair of matching single or double quotes around p, as
// left behind when a path is pasted from a file manager.
func Unquote(p string) string {
	p = strings.TrimSpace(p)
	if len(p) >= 2 {
		first, last := p[0], p[len(p)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return strings.TrimSpace(p[1 : len(p)-1])
		}
	}
	return p
}
