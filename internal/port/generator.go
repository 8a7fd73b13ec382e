package port

import "xray/internal/domain"

// Generator renders the structural model back into source text.
type Generator interface {
	// RenderModule returns the content of a module file.
	RenderModule(module domain.Module) (string, error)

	// RenderPackageInit returns the content of a package marker file.
	RenderPackageInit(pkg domain.Package) (string, error)
}
