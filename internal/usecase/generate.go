package usecase

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"xray/internal/adapter/fs"
	"xray/internal/adapter/validator"
	"xray/internal/domain"
	"xray/internal/port"
)

// GenerateUseCase writes a skeleton source tree for a configuration.
type GenerateUseCase struct {
	generator port.Generator
	writer    port.SourceWriter
	progress  ProgressFunc
}

// NewGenerateUseCase creates a new generate use case.
func NewGenerateUseCase(generator port.Generator, writer port.SourceWriter) *GenerateUseCase {
	return &GenerateUseCase{
		generator: generator,
		writer:    writer,
	}
}

// SetProgress installs a progress callback. The path passed to it is the
// generated file relative to the output directory.
func (u *GenerateUseCase) SetProgress(fn ProgressFunc) {
	u.progress = fn
}

// GenerateResult contains the results of a generate run.
type GenerateResult struct {
	Dir        string
	Packages   int
	Modules    int
	Violations []validator.Violation
}

// Generate writes the tree of cfg into outDir/<root name>. Unless
// skipValidations is set, naming violations abort the run before anything
// is written and are returned together with the error.
func (u *GenerateUseCase) Generate(cfg *domain.Config, outDir string, skipValidations bool) (*GenerateResult, error) {
	root := cfg.Root
	if root.Name == "" {
		return nil, fmt.Errorf("configuration has no root name")
	}

	result := &GenerateResult{Dir: filepath.Join(outDir, root.Name)}

	if !skipValidations {
		result.Violations = validator.Validate(cfg)
		if err := validator.Err(result.Violations); err != nil {
			return result, fmt.Errorf("validation failed: %w", err)
		}
	}

	g := &generation{
		GenerateUseCase: u,
		outDir:          outDir,
		total:           countFiles(root.Packages, root.Modules),
		result:          result,
	}

	if root.Description != "" {
		content, err := u.generator.RenderPackageInit(domain.Package{Name: root.Name, Description: root.Description})
		if err != nil {
			return nil, err
		}
		if err := u.writer.CreatePackage(result.Dir, content); err != nil {
			return nil, err
		}
	}

	if err := g.tree(result.Dir, root.Packages, root.Modules); err != nil {
		return nil, err
	}
	return result, nil
}

// generation is the state of one Generate call.
type generation struct {
	*GenerateUseCase
	outDir string
	total  int
	done   int
	result *GenerateResult
}

func (g *generation) tree(dir string, packages []domain.Package, modules []domain.Module) error {
	for _, m := range modules {
		content, err := g.generator.RenderModule(m)
		if err != nil {
			return fmt.Errorf("failed to render module %s: %w", m.Name, err)
		}
		if err := g.writer.WriteModule(dir, m.Name, content); err != nil {
			return err
		}
		g.result.Modules++
		g.step(filepath.Join(dir, m.Name+fs.SourceExt))
	}

	for _, p := range packages {
		pkgDir := filepath.Join(dir, p.Name)
		content, err := g.generator.RenderPackageInit(p)
		if err != nil {
			return fmt.Errorf("failed to render package %s: %w", p.Name, err)
		}
		if err := g.writer.CreatePackage(pkgDir, content); err != nil {
			return err
		}
		g.result.Packages++
		log.Debug().Str("dir", pkgDir).Msg("created package")

		if err := g.tree(pkgDir, p.Packages, p.Modules); err != nil {
			return err
		}
	}
	return nil
}

func (g *generation) step(file string) {
	g.done++
	if g.progress == nil {
		return
	}
	rel, err := filepath.Rel(g.outDir, file)
	if err != nil {
		rel = file
	}
	g.progress(g.done, g.total, filepath.ToSlash(rel))
}

func countFiles(packages []domain.Package, modules []domain.Module) int {
	n := len(modules)
	for _, p := range packages {
		n += countFiles(p.Packages, p.Modules)
	}
	return n
}
