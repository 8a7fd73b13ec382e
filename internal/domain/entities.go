package domain

// Config is the document written by `xray parse` and read by `xray gen`.
type Config struct {
	Root Root `toml:"root" yaml:"root"`
}

// Root is the top of a source tree. Its modules live directly in the tree's
// directory; its packages are the marked sub-directories.
type Root struct {
	Name        string    `toml:"name" yaml:"name"`
	Description string    `toml:"description,omitempty" yaml:"description,omitempty"`
	Packages    []Package `toml:"packages,omitempty" yaml:"packages,omitempty"`
	Modules     []Module  `toml:"modules,omitempty" yaml:"modules,omitempty"`
}

// Package is a directory carrying the package marker file. Packages nest.
type Package struct {
	Name        string    `toml:"name" yaml:"name"`
	Description string    `toml:"description,omitempty" yaml:"description,omitempty"`
	Packages    []Package `toml:"packages,omitempty" yaml:"packages,omitempty"`
	Modules     []Module  `toml:"modules,omitempty" yaml:"modules,omitempty"`
}

// Module is a single source file, named without its extension.
type Module struct {
	Name        string     `toml:"name" yaml:"name"`
	Description string     `toml:"description,omitempty" yaml:"description,omitempty"`
	Classes     []Class    `toml:"classes,omitempty" yaml:"classes,omitempty"`
	Functions   []Function `toml:"functions,omitempty" yaml:"functions,omitempty"`
}

type Class struct {
	Name        string     `toml:"name" yaml:"name"`
	Description string     `toml:"description,omitempty" yaml:"description,omitempty"`
	Parents     []string   `toml:"parents,omitempty" yaml:"parents,omitempty"`
	Methods     []Function `toml:"methods,omitempty" yaml:"methods,omitempty"`
}

type Function struct {
	Name        string   `toml:"name" yaml:"name"`
	Description string   `toml:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []string `toml:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// SourceFile is a module file found while walking a tree.
type SourceFile struct {
	Path    string // absolute path
	RelPath string // slash separated, relative to the walked root
	ModTime int64
	Size    int64
}

// ParseStats summarizes one parse run.
type ParseStats struct {
	Packages  int
	Modules   int
	Classes   int
	Functions int
	Cached    int
}

// CachedModule is a parse result remembered between runs. It is reused while
// the file's modification time and size are unchanged.
type CachedModule struct {
	Path    string `json:"path"`
	ModTime int64  `json:"mod_time"`
	Size    int64  `json:"size"`
	Module  Module `json:"module"`
}

// Fresh reports whether the entry still describes f.
func (c CachedModule) Fresh(f SourceFile) bool {
	return c.ModTime == f.ModTime && c.Size == f.Size
}
