package usecase

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"xray/internal/adapter/fs"
	"xray/internal/adapter/parser"
	"xray/internal/domain"
	"xray/internal/port"
)

// ProgressFunc is called after each file with the number of files handled
// so far, the total, and the file's path relative to the root.
type ProgressFunc func(done, total int, relPath string)

// ParseUseCase turns a source tree into a structural configuration.
type ParseUseCase struct {
	walker   port.FileWalker
	reader   port.FileReader
	cache    port.ModuleCache
	progress ProgressFunc
}

// NewParseUseCase creates a new parse use case.
func NewParseUseCase(walker port.FileWalker, reader port.FileReader, cache port.ModuleCache) *ParseUseCase {
	return &ParseUseCase{
		walker: walker,
		reader: reader,
		cache:  cache,
	}
}

// SetProgress installs a progress callback.
func (u *ParseUseCase) SetProgress(fn ProgressFunc) {
	u.progress = fn
}

// ParseResult contains the results of a parse run.
type ParseResult struct {
	Config   *domain.Config
	Stats    domain.ParseStats
	Deleted  int
	Warnings []string
}

// Parse walks root and folds every module below it into a Config. Files that
// cannot be read or decoded are reported as warnings and left out.
func (u *ParseUseCase) Parse(root string) (*ParseResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	files, err := u.walker.Walk(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	packages := make(map[string]bool)
	for _, f := range files {
		if path.Base(f.RelPath) == fs.PackageMarker {
			packages[path.Dir(f.RelPath)] = true
		}
	}

	result := &ParseResult{}
	tree := newTreeNode(filepath.Base(absRoot))
	seen := make(map[string]bool, len(files))

	for i, f := range files {
		seen[f.Path] = true
		dir := path.Dir(f.RelPath)

		if !reachable(dir, packages) {
			log.Debug().Str("file", f.RelPath).Msg("skipping module outside a package")
		} else if m, cached, err := u.module(f); err != nil {
			log.Warn().Err(err).Str("file", f.RelPath).Msg("skipping file")
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", f.RelPath, err))
		} else {
			if cached {
				result.Stats.Cached++
			}
			node := tree.dir(dir)
			if path.Base(f.RelPath) == fs.PackageMarker {
				node.description = m.Description
			} else {
				node.modules = append(node.modules, m)
			}
		}

		if u.progress != nil {
			u.progress(i+1, len(files), f.RelPath)
		}
	}

	for dir := range packages {
		if dir != "." && reachable(dir, packages) {
			tree.dir(dir)
		}
	}

	deleted, err := u.prune(seen)
	if err != nil {
		return nil, err
	}
	result.Deleted = deleted

	result.Config = &domain.Config{Root: tree.root()}
	countTree(&result.Stats, result.Config.Root.Packages, result.Config.Root.Modules)

	return result, nil
}

// module returns the folded module for f, from the cache when the file is
// unchanged.
func (u *ParseUseCase) module(f domain.SourceFile) (domain.Module, bool, error) {
	entry, ok, err := u.cache.Get(f.Path)
	if err != nil {
		log.Warn().Err(err).Str("file", f.RelPath).Msg("ignoring cache entry")
	} else if ok && entry.Fresh(f) {
		return entry.Module, true, nil
	}

	src, err := u.reader.ReadFile(f.Path)
	if err != nil {
		return domain.Module{}, false, fmt.Errorf("failed to read file: %w", err)
	}

	items, err := parser.Parse(src)
	if err != nil {
		return domain.Module{}, false, err
	}
	m := FoldModule(fs.ModuleName(f.RelPath), items)

	if err := u.cache.Put(domain.CachedModule{
		Path:    f.Path,
		ModTime: f.ModTime,
		Size:    f.Size,
		Module:  m,
	}); err != nil {
		return domain.Module{}, false, fmt.Errorf("failed to cache module: %w", err)
	}
	return m, false, nil
}

// prune drops cache entries for files that are gone.
func (u *ParseUseCase) prune(seen map[string]bool) (int, error) {
	paths, err := u.cache.Paths()
	if err != nil {
		return 0, fmt.Errorf("failed to list cache: %w", err)
	}
	deleted := 0
	for _, p := range paths {
		if seen[p] {
			continue
		}
		if err := u.cache.Delete(p); err != nil {
			return deleted, fmt.Errorf("failed to delete cache entry %s: %w", p, err)
		}
		deleted++
	}
	return deleted, nil
}

// reachable reports whether dir is the root or a package whose ancestors
// below the root are all packages.
func reachable(dir string, packages map[string]bool) bool {
	for ; dir != "."; dir = path.Dir(dir) {
		if !packages[dir] {
			return false
		}
	}
	return true
}
