package project

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker finds project source files by include/exclude glob patterns.
type Walker struct {
	includes []string
	excludes []string
}

// NewWalker creates a Walker. With no include patterns, every .gox file
// is picked up.
func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*.gox"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

// Walk returns the matching files under root as sorted slash-separated
// paths relative to root. Sorting keeps discovery deterministic across
// platforms.
func (w *Walker) Walk(root string) ([]string, error) {
	var files []string

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && w.shouldExclude(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldInclude(rel) && !w.shouldExclude(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}
