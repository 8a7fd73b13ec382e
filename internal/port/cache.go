package port

import "xray/internal/domain"

// ModuleCache remembers parse results keyed by absolute file path.
type ModuleCache interface {
	Get(path string) (domain.CachedModule, bool, error)

	Put(entry domain.CachedModule) error

	Delete(path string) error

	Paths() ([]string, error)

	Close() error
}
