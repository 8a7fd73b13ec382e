package parser

// Kind identifies the variant of an Item.
type Kind int

const (
	KindShebang Kind = iota
	KindImport
	KindImportFrom
	KindModuleDoc
	KindClass
	KindFunction
	KindCode
)

var kindNames = [...]string{
	KindShebang:    "shebang",
	KindImport:     "import",
	KindImportFrom: "import_from",
	KindModuleDoc:  "module_doc",
	KindClass:      "class",
	KindFunction:   "function",
	KindCode:       "code",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Item is one recognized unit of source. The concrete types below are the
// only implementations.
type Item interface {
	Kind() Kind
}

// Shebang is an interpreter line at the very start of a module.
type Shebang struct {
	Path string `yaml:"path"`
}

// Import is `import <path>`. Multi-name imports stay one opaque path.
type Import struct {
	Path string `yaml:"path"`
}

// ImportFrom is `from <module> import <name>`. Level counts the leading
// relative-import dots, which are stripped from Module.
type ImportFrom struct {
	Module string `yaml:"module"`
	Name   string `yaml:"name"`
	Level  int    `yaml:"level"`
}

// ModuleDoc is a doc-string found before anything else in a module.
type ModuleDoc struct {
	Description string `yaml:"description,omitempty"`
}

// Class is a class header with its doc-string, parents and methods.
type Class struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Parents     []string   `yaml:"parents,omitempty"`
	Methods     []Function `yaml:"methods,omitempty"`
}

// Function is a def header with its doc-string and raw parameter tokens.
// Decorators are consumed but not kept.
type Function struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Parameters  []string `yaml:"parameters,omitempty"`
}

// Code is a line that matched nothing else.
type Code struct {
	Text string `yaml:"text"`
}

func (Shebang) Kind() Kind    { return KindShebang }
func (Import) Kind() Kind     { return KindImport }
func (ImportFrom) Kind() Kind { return KindImportFrom }
func (ModuleDoc) Kind() Kind  { return KindModuleDoc }
func (Class) Kind() Kind      { return KindClass }
func (Function) Kind() Kind   { return KindFunction }
func (Code) Kind() Kind       { return KindCode }
