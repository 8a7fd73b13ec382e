// Package validator checks naming conventions of a structural configuration
// before source is generated from it.
package validator

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/iancoleman/strcase"
	"xray/internal/domain"
)

var ErrInvalidName = errors.New("invalid name")

const (
	RuleSnakeCase = "snake_case"
	RuleCamelCase = "CamelCase"
)

// Violation is a single offending name. Path is the slash separated location
// of the module that declares it.
type Violation struct {
	Path string
	Kind string
	Name string
	Rule string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s %q is not %s", v.Path, v.Kind, v.Name, v.Rule)
}

func (v Violation) Unwrap() error {
	return ErrInvalidName
}

// Validate walks the whole tree and returns every violation in tree order.
func Validate(cfg *domain.Config) []Violation {
	var out []Violation
	root := cfg.Root
	out = checkTree(out, root.Name, root.Packages, root.Modules)
	return out
}

// Err joins violations into one error, or returns nil when there are none.
func Err(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	errs := make([]error, len(violations))
	for i, v := range violations {
		errs[i] = v
	}
	return errors.Join(errs...)
}

func checkTree(out []Violation, dir string, packages []domain.Package, modules []domain.Module) []Violation {
	for _, m := range modules {
		out = checkModule(out, path.Join(dir, m.Name), m)
	}
	for _, p := range packages {
		out = checkTree(out, path.Join(dir, p.Name), p.Packages, p.Modules)
	}
	return out
}

func checkModule(out []Violation, where string, m domain.Module) []Violation {
	for _, c := range m.Classes {
		if !IsCamelCase(c.Name) {
			out = append(out, Violation{Path: where, Kind: "class", Name: c.Name, Rule: RuleCamelCase})
		}
		for _, fn := range c.Methods {
			if !IsSnakeCase(fn.Name) {
				out = append(out, Violation{Path: where + "." + c.Name, Kind: "method", Name: fn.Name, Rule: RuleSnakeCase})
			}
		}
	}
	for _, fn := range m.Functions {
		if !IsSnakeCase(fn.Name) {
			out = append(out, Violation{Path: where, Kind: "function", Name: fn.Name, Rule: RuleSnakeCase})
		}
	}
	return out
}

// IsSnakeCase reports whether name is lower snake case. Leading and trailing
// underscores are allowed, so private and dunder names pass.
func IsSnakeCase(name string) bool {
	core := strings.Trim(name, "_")
	if core == "" {
		return name != ""
	}
	return strcase.ToSnake(core) == core
}

// IsCamelCase reports whether name is upper camel case, ignoring leading
// underscores.
func IsCamelCase(name string) bool {
	core := strings.TrimLeft(name, "_")
	if core == "" {
		return false
	}
	return strcase.ToCamel(core) == core
}
