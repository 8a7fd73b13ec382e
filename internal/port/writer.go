package port

// SourceWriter lays out a generated tree on disk.
type SourceWriter interface {
	// CreatePackage creates dir and its package marker file with content.
	CreatePackage(dir, content string) error

	// WriteModule writes a module file named name inside dir.
	WriteModule(dir, name, content string) error
}
