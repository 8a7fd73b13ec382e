package port

import "xray/internal/domain"

type FileWalker interface {
	Walk(root string) ([]domain.SourceFile, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}
