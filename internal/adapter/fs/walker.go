package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"xray/internal/domain"
)

const (
	// SourceExt is the extension of module files.
	SourceExt = ".py"
	// PackageMarker marks a directory as a package.
	PackageMarker = "__init__" + SourceExt
)

type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*" + SourceExt}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

// Walk returns the included files under root in lexical order. Excluded
// directories are not descended into.
func (w *Walker) Walk(root string) ([]domain.SourceFile, error) {
	var files []domain.SourceFile

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && w.shouldExclude(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, domain.SourceFile{
				Path:    path,
				RelPath: relPath,
				ModTime: info.ModTime().UnixNano(),
				Size:    info.Size(),
			})
		}

		return nil
	})

	return files, err
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

// Excluded reports whether a path relative to the walked root is filtered
// out, either by itself or through one of its directories.
func (w *Walker) Excluded(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	if w.shouldExclude(relPath) {
		return true
	}
	for dir := relPath; ; {
		i := strings.LastIndexByte(dir, '/')
		if i < 0 {
			return false
		}
		dir = dir[:i]
		if w.shouldExclude(dir + "/") {
			return true
		}
	}
}

// ModuleName strips the source extension from a file name.
func ModuleName(fileName string) string {
	return strings.TrimSuffix(filepath.Base(fileName), SourceExt)
}

type Reader struct{}

func (Reader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
