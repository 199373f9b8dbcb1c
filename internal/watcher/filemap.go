package watcher

import (
	"path/filepath"
)

// FileMap decides which paths are request files. Patterns without a
// directory part match the file name; others match the absolute path,
// relative patterns being resolved against root.
type FileMap struct {
	includes *baseAndAbs
	excludes *baseAndAbs
}

func NewFileMap(root string, includes []string, excludes []string) *FileMap {
	return &FileMap{
		includes: newBaseAndAbs(root, includes),
		excludes: newBaseAndAbs(root, excludes),
	}
}

// ToInclude reports whether a change to p should be submitted. Path
// patterns take precedence over name patterns.
func (x *FileMap) ToInclude(p string) bool {
	base := filepath.Base(p)
	abs, err := filepath.Abs(p)
	switch {
	case err != nil:
		return false
	case x.includes.abses.match(abs):
		return true
	case x.excludes.abses.match(abs):
		return false
	default:
		return x.includes.bases.match(base) && !x.excludes.bases.match(base)
	}
}

// ExplicitlyExcluded reports whether a directory must not be watched.
func (x *FileMap) ExplicitlyExcluded(p string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return true
	}
	return x.excludes.abses.match(abs) || x.excludes.bases.match(filepath.Base(abs))
}

type pathsMatcher []string

func (x pathsMatcher) match(path string) bool {
	for _, y := range x {
		if m, _ := filepath.Match(y, path); m {
			return true
		}
	}
	return false
}

type baseAndAbs struct {
	bases pathsMatcher
	abses pathsMatcher
}

func newBaseAndAbs(root string, l []string) *baseAndAbs {
	r := &baseAndAbs{}
	for _, x := range l {
		if filepath.Base(x) == x {
			r.bases = append(r.bases, x)
			continue
		}
		if !filepath.IsAbs(x) {
			x = filepath.Join(root, x)
		}
		r.abses = append(r.abses, filepath.Clean(x))
	}
	return r
}
