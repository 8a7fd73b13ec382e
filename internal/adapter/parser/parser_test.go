package parser

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) []Item {
	t.Helper()
	items, err := Parse([]byte(src))
	require.NoError(t, err)
	return items
}

func TestParseClass(t *testing.T) {
	src := `class Animal:
    def __init__(self):
        pass
`
	items := parse(t, src)

	require.Len(t, items, 1)
	assert.Equal(t, Class{
		Name: "Animal",
		Methods: []Function{
			{Name: "__init__", Parameters: []string{"self"}},
		},
	}, items[0])
	assert.Empty(t, items[0].(Class).Parents)
}

func TestParseClassWithParents(t *testing.T) {
	src := `class Dog(Animal):
    def bark(self):
        pass

class Service(base.Service, Mixin, ):
    pass
`
	items := parse(t, src)

	require.Len(t, items, 2)
	assert.Equal(t, []string{"Animal"}, items[0].(Class).Parents)
	assert.Equal(t, []string{"base.Service", "Mixin"}, items[1].(Class).Parents)
	assert.Empty(t, items[1].(Class).Methods)
}

func TestParseClassWithMultipleMethods(t *testing.T) {
	src := `
class Animal:
    """
    Animal class.
    """
    def __init__(self):
        """
        Init method.
        """
        pass

    def hello(args):
        """
        Hello method.
        """
        pass
`
	items := parse(t, src)

	require.Len(t, items, 1)
	assert.Equal(t, Class{
		Name:        "Animal",
		Description: "Animal class.",
		Methods: []Function{
			{Name: "__init__", Description: "Init method.", Parameters: []string{"self"}},
			{Name: "hello", Description: "Hello method.", Parameters: []string{"args"}},
		},
	}, items[0])
}

func TestParseClassAndFunction(t *testing.T) {
	src := `class Animal:
    """
    This is the animal class.
    """
    def __init__(self):
        """
        Init method.
        """
        for i in range(0, 12):
            print i

    def get_animal(self):
        """
        Get the animal instance of this object.
        """
        pass

def display(msg):
    """
    This is the display function.
    """
    pass
`
	items := parse(t, src)

	require.Len(t, items, 2)
	assert.Equal(t, Class{
		Name:        "Animal",
		Description: "This is the animal class.",
		Methods: []Function{
			{Name: "__init__", Description: "Init method.", Parameters: []string{"self"}},
			{Name: "get_animal", Description: "Get the animal instance of this object.", Parameters: []string{"self"}},
		},
	}, items[0])
	assert.Equal(t, Function{
		Name:        "display",
		Description: "This is the display function.",
		Parameters:  []string{"msg"},
	}, items[1])
}

func TestParseMultipleFunctions(t *testing.T) {
	src := `def __hello__(args):
    """
    This is the hello function.
    """
    print "Hello"

def hello(args):
    """
    Another hello function.
    """
    print "Hello"
`
	items := parse(t, src)

	assert.Equal(t, []Item{
		Function{Name: "__hello__", Description: "This is the hello function.", Parameters: []string{"args"}},
		Function{Name: "hello", Description: "Another hello function.", Parameters: []string{"args"}},
	}, items)
}

func TestParseClassBodyContent(t *testing.T) {
	t.Run("statements before the first method are skipped", func(t *testing.T) {
		src := `class Config(Base):
    debug = False
    name = "x"

    def load(self, path):
        pass
`
		items := parse(t, src)
		require.Len(t, items, 1)
		assert.Equal(t, []Function{{Name: "load", Parameters: []string{"self", "path"}}}, items[0].(Class).Methods)
	})

	t.Run("nested classes do not lend their methods", func(t *testing.T) {
		src := `class Outer:
    class Inner:
        def inner_method(self):
            pass

    def outer_method(self):
        pass
`
		items := parse(t, src)
		require.Len(t, items, 1)
		assert.Equal(t, []Function{{Name: "outer_method", Parameters: []string{"self"}}}, items[0].(Class).Methods)
	})

	t.Run("class without methods ends at the next top-level line", func(t *testing.T) {
		src := `class Empty:
    pass

def after():
    pass
`
		items := parse(t, src)
		assert.Equal(t, []Item{
			Class{Name: "Empty"},
			Function{Name: "after"},
		}, items)
	})
}

func TestParseModuleDoc(t *testing.T) {
	t.Run("first statement", func(t *testing.T) {
		items := parse(t, "\"\"\"Module doc.\"\"\"\nimport os\n")
		assert.Equal(t, []Item{
			ModuleDoc{Description: "Module doc."},
			Import{Path: "os"},
		}, items)
	})

	t.Run("second statement", func(t *testing.T) {
		items := parse(t, "import os\n\"\"\"Module doc.\"\"\"\n")
		assert.Equal(t, []Item{
			Import{Path: "os"},
			Code{Text: `"""Module doc."""`},
		}, items)
	})

	t.Run("single quotes and leading blank lines", func(t *testing.T) {
		items := parse(t, "\n\n'''\n    Tools for\n    parsing.\n'''\n")
		assert.Equal(t, []Item{ModuleDoc{Description: "Tools for\nparsing."}}, items)
	})
}

func TestParseImports(t *testing.T) {
	src := `import os
import os.path, sys  # platform helpers
from .os import stat
from ..os.stat import __init__
from . import sibling
from __future__ import annotations
from pkg import (
    first,
    second,
)
important = True
`
	items := parse(t, src)

	assert.Equal(t, []Item{
		Import{Path: "os"},
		Import{Path: "os.path, sys"},
		ImportFrom{Module: "os", Name: "stat", Level: 1},
		ImportFrom{Module: "os.stat", Name: "__init__", Level: 2},
		ImportFrom{Module: "", Name: "sibling", Level: 1},
		ImportFrom{Module: "__future__", Name: "annotations", Level: 0},
		ImportFrom{Module: "pkg", Name: "first, second", Level: 0},
		Code{Text: "important = True"},
	}, items)
}

func TestParseShebang(t *testing.T) {
	items := parse(t, "#!/usr/bin/env python\nimport sys\n#!/not/a/shebang\n")

	assert.Equal(t, []Item{
		Shebang{Path: "/usr/bin/env python"},
		Import{Path: "sys"},
		Code{Text: "#!/not/a/shebang"},
	}, items)
}

func TestParseParameters(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"trailing comma", "def hello(args, ):\n    pass\n", []string{"args"}},
		{"empty", "def hello():\n    pass\n", nil},
		{"defaults", "def f(a, b=1, c=[], d={}, *args, **kwargs):\n    pass\n",
			[]string{"a", "b=1", "c=[]", "d={}", "*args", "**kwargs"}},
		{"multi-line", "def f(\n    self,\n    path,\n):\n    pass\n", []string{"self", "path"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := parse(t, tt.src)
			require.Len(t, items, 1)
			fn, ok := items[0].(Function)
			require.True(t, ok, "got %T", items[0])
			assert.Equal(t, tt.want, fn.Parameters)
		})
	}
}

func TestParseDecorators(t *testing.T) {
	plain := parse(t, "def hello(args):\n    \"\"\"Say hello.\"\"\"\n    pass\n")
	decorated := parse(t, "@staticmethod\n@cache(maxsize=2)\ndef hello(args):\n    \"\"\"Say hello.\"\"\"\n    pass\n")

	require.Len(t, plain, 1)
	assert.Equal(t, plain, decorated)

	t.Run("decorated methods", func(t *testing.T) {
		items := parse(t, `class Shape:
    @property
    def area(self):
        pass

    @classmethod
    def unit(cls):
        pass
`)
		require.Len(t, items, 1)
		assert.Equal(t, []Function{
			{Name: "area", Parameters: []string{"self"}},
			{Name: "unit", Parameters: []string{"cls"}},
		}, items[0].(Class).Methods)
	})

	t.Run("decorated class", func(t *testing.T) {
		items := parse(t, "@dataclass\nclass Point:\n    def norm(self):\n        pass\n")
		assert.Equal(t, []Item{
			Code{Text: "@dataclass"},
			Class{Name: "Point", Methods: []Function{{Name: "norm", Parameters: []string{"self"}}}},
		}, items)
	})
}

func TestParseHeaderVariants(t *testing.T) {
	items := parse(t, `async def fetch(url) -> bytes:
    pass

def area(self, ) -> float:
    return 0
`)

	assert.Equal(t, []Item{
		Function{Name: "fetch", Parameters: []string{"url"}},
		Function{Name: "area", Parameters: []string{"self"}},
	}, items)
}

func TestParseIndentationVariants(t *testing.T) {
	t.Run("tabs", func(t *testing.T) {
		items := parse(t, "class A:\n\tdef m(self):\n\t\tpass\n\tdef n(self):\n\t\tpass\n")
		require.Len(t, items, 1)
		assert.Len(t, items[0].(Class).Methods, 2)
	})

	t.Run("crlf", func(t *testing.T) {
		items := parse(t, "def f(a):\r\n    pass\r\nx = 1\r\n")
		assert.Equal(t, []Item{
			Function{Name: "f", Parameters: []string{"a"}},
			Code{Text: "x = 1"},
		}, items)
	})
}

func TestParseFallsBackToCode(t *testing.T) {
	items := parse(t, `if __name__ == "__main__":
    main()
def broken(:
    pass
`)

	assert.Equal(t, []Item{
		Code{Text: `if __name__ == "__main__":`},
		Code{Text: "    main()"},
		Code{Text: "def broken(:"},
		Code{Text: "    pass"},
	}, items)
}

func TestParseEmpty(t *testing.T) {
	assert.Empty(t, parse(t, ""))
	assert.Empty(t, parse(t, "\n\n   \n\t"))
}

func TestParseDecodeError(t *testing.T) {
	_, err := Parse([]byte("import os\nx = '\xff'\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedSource))

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 15, de.Offset)

	t.Run("discarded bodies are not decoded", func(t *testing.T) {
		items, err := Parse([]byte("def f():\n    x = '\xff'\n"))
		require.NoError(t, err)
		assert.Equal(t, []Item{Function{Name: "f"}}, items)
	})
}

func TestCleanDoc(t *testing.T) {
	assert.Equal(t, "one line", cleanDoc("  one line  "))
	assert.Equal(t, "first\nsecond\n\nthird", cleanDoc("\n    first\n    second\n\n    third\n    "))
	assert.Equal(t, "head\n  nested\nback", cleanDoc("head\n      nested\n    back"))
}

// consumed drives the grammar one step at a time and checks that every step
// makes progress and that the steps cover the whole input.
func consumed(t *testing.T, src string) {
	t.Helper()
	p := &parser{}
	in := input{buf: []byte(src)}
	total := 0
	first := true

	if _, rest, ok := p.docString(in); ok {
		total += in.len() - rest.len()
		in = rest
		first = false
	}
	for in.len() > 0 {
		item, rest := p.next(in, first)
		require.Less(t, rest.len(), in.len(), "no progress at offset %d", in.off)
		total += in.len() - rest.len()
		if item != nil {
			first = false
		}
		in = rest
	}
	require.NoError(t, p.err)
	assert.Equal(t, len(src), total)
}

func TestTotality(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"x",
		"class",
		"class A",
		"class A(",
		"def f(",
		"def f():",
		"@decorator",
		"from",
		"from . import",
		"\"\"\"unterminated",
		"class A:\n    def f(self):\n        pass\n    x = 1\n\n\ny = 2\n",
		"    indented\n  less\nnone\n",
		"#!\n#!\n",
		"def f(a,\n",
	}
	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			consumed(t, src)
		})
	}
}

func FuzzParse(f *testing.F) {
	f.Add([]byte("class Animal:\n    def __init__(self):\n        pass\n"))
	f.Add([]byte("\"\"\"doc\"\"\"\nfrom ..a import b\n@d\ndef f(x=[], ):\n    pass\n"))
	f.Add([]byte("#!/bin/python\nimport os\n\tclass B(A):\n\t\t'''x'''\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		items, err := Parse(data)
		if utf8.Valid(data) {
			if err != nil {
				t.Fatalf("valid input rejected: %v", err)
			}
			consumed(t, string(data))
			return
		}
		if err != nil && !errors.Is(err, ErrMalformedSource) {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = items
	})
}
