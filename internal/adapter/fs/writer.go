package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer creates packages and module files. Existing files are overwritten.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) CreatePackage(dir, content string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create package directory: %w", err)
	}
	return writeFile(filepath.Join(dir, PackageMarker), content)
}

func (w *Writer) WriteModule(dir, name, content string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return writeFile(filepath.Join(dir, name+SourceExt), content)
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
