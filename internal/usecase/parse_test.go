package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"xray/internal/adapter/fs"
	"xray/internal/adapter/memstore"
	"xray/internal/adapter/parser"
	"xray/internal/domain"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func newParseUseCase(cache *memstore.MemoryStore) *ParseUseCase {
	walker := fs.NewWalker(nil, []string{"**/__pycache__/**", "**/.xray/**"})
	return NewParseUseCase(walker, fs.Reader{}, cache)
}

func TestFoldModule(t *testing.T) {
	items := []parser.Item{
		parser.ModuleDoc{Description: "Dogs."},
		parser.Shebang{Path: "/usr/bin/env python"},
		parser.Import{Path: "os"},
		parser.ImportFrom{Module: "animals", Name: "Animal", Level: 1},
		parser.Class{
			Name:    "Dog",
			Parents: []string{"Animal"},
			Methods: []parser.Function{{Name: "bark", Parameters: []string{"self"}}},
		},
		parser.Code{Text: "x = 1"},
		parser.Function{Name: "adopt", Description: "Adopt.", Parameters: []string{"owner"}},
	}

	assert.Equal(t, domain.Module{
		Name:        "dog",
		Description: "Dogs.",
		Classes: []domain.Class{{
			Name:    "Dog",
			Parents: []string{"Animal"},
			Methods: []domain.Function{{Name: "bark", Parameters: []string{"self"}}},
		}},
		Functions: []domain.Function{{Name: "adopt", Description: "Adopt.", Parameters: []string{"owner"}}},
	}, FoldModule("dog", items))
}

func TestParse(t *testing.T) {
	root := filepath.Join(t.TempDir(), "zoo")
	writeTree(t, root, map[string]string{
		"main.py":                         "def run(argv):\n    pass\n",
		"animals/__init__.py":             "\"\"\"Animals.\"\"\"\n",
		"animals/dog.py":                  "class Dog(Animal):\n    def bark(self):\n        pass\n",
		"animals/cat.py":                  "\"\"\"Cats.\"\"\"\n",
		"animals/birds/__init__.py":       "",
		"animals/birds/parrot.py":         "def speak(words=[]):\n    pass\n",
		"animals/notes/draft.py":          "def draft():\n    pass\n",
		"animals/__pycache__/dog.py":      "def cached():\n    pass\n",
		"scripts/tool.py":                 "def tool():\n    pass\n",
		"broken/__init__.py":              "",
		"broken/bad.py":                   "x = \"\xff\"\n",
		"animals/birds/empty/__init__.py": "",
	})

	var progress []string
	uc := newParseUseCase(memstore.NewMemoryStore())
	uc.SetProgress(func(done, total int, relPath string) {
		progress = append(progress, relPath)
	})

	result, err := uc.Parse(root)
	require.NoError(t, err)

	want := domain.Root{
		Name: "zoo",
		Packages: []domain.Package{
			{
				Name:        "animals",
				Description: "Animals.",
				Packages: []domain.Package{{
					Name:     "birds",
					Packages: []domain.Package{{Name: "empty"}},
					Modules:  []domain.Module{{
						Name:      "parrot",
						Functions: []domain.Function{{Name: "speak", Parameters: []string{"words=[]"}}},
					}},
				}},
				Modules: []domain.Module{
					{Name: "cat", Description: "Cats."},
					{
						Name: "dog",
						Classes: []domain.Class{{
							Name:    "Dog",
							Parents: []string{"Animal"},
							Methods: []domain.Function{{Name: "bark", Parameters: []string{"self"}}},
						}},
					},
				},
			},
			{Name: "broken"},
		},
		Modules: []domain.Module{{
			Name:      "main",
			Functions: []domain.Function{{Name: "run", Parameters: []string{"argv"}}},
		}},
	}
	assert.Equal(t, want, result.Config.Root)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "broken/bad.py")
	assert.Contains(t, result.Warnings[0], "malformed")

	assert.Equal(t, domain.ParseStats{Packages: 4, Modules: 4, Classes: 1, Functions: 3}, result.Stats)
	assert.Len(t, progress, 11)
}

func TestParseCache(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"dog.py": "def bark():\n    pass\n",
		"cat.py": "def purr():\n    pass\n",
	})

	cache := memstore.NewMemoryStore()
	uc := newParseUseCase(cache)

	first, err := uc.Parse(root)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Stats.Cached)

	second, err := uc.Parse(root)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Stats.Cached)
	assert.Equal(t, first.Config, second.Config)

	require.NoError(t, os.Remove(filepath.Join(root, "cat.py")))
	writeTree(t, root, map[string]string{"dog.py": "def bark(times):\n    pass\n"})

	third, err := uc.Parse(root)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Deleted)
	require.Len(t, third.Config.Root.Modules, 1)
	assert.Equal(t, []string{"times"}, third.Config.Root.Modules[0].Functions[0].Parameters)

	paths, err := cache.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "dog.py")}, paths)
}
