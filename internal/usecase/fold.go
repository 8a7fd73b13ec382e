package usecase

import (
	"xray/internal/adapter/parser"
	"xray/internal/domain"
)

// FoldModule turns the items of one file into a Module. Imports, shebangs
// and opaque code carry no structure and are dropped.
func FoldModule(name string, items []parser.Item) domain.Module {
	m := domain.Module{Name: name}
	for _, item := range items {
		switch it := item.(type) {
		case parser.ModuleDoc:
			m.Description = it.Description
		case parser.Class:
			m.Classes = append(m.Classes, foldClass(it))
		case parser.Function:
			m.Functions = append(m.Functions, foldFunction(it))
		}
	}
	return m
}

func foldClass(c parser.Class) domain.Class {
	out := domain.Class{
		Name:        c.Name,
		Description: c.Description,
		Parents:     c.Parents,
	}
	for _, fn := range c.Methods {
		out.Methods = append(out.Methods, foldFunction(fn))
	}
	return out
}

func foldFunction(fn parser.Function) domain.Function {
	return domain.Function{
		Name:        fn.Name,
		Description: fn.Description,
		Parameters:  fn.Parameters,
	}
}
