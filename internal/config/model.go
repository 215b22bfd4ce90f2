package config

import "fmt"

// Names of the three configuration documents, relative to the config dir.
const (
	PathsFile  = "paths.yaml"
	ParamsFile = "params.yaml"
	FilesFile  = "files.yaml"
)

// PlaceholdersKey is the reserved top-level params key holding the
// placeholder-name to template-expression map.
const PlaceholdersKey = "placeholders"

// FileTemplatesKey is the default namespace in the files document used for
// unqualified template lookups.
const FileTemplatesKey = "file_templates"

// Path is a filesystem path leaf inside a loaded paths document. Every
// string leaf of paths.yaml is coerced into a Path during loading: tilde and
// environment references expanded, relative entries re-rooted at the project
// root, and the result normalized to an absolute path.
type Path string

// String implements fmt.Stringer.
func (p Path) String() string { return string(p) }

// Documents holds the three loaded configuration documents for one project.
type Documents struct {
	// Root is the discovered project root all relative paths were resolved
	// against.
	Root string

	// Paths is the directory layout document. String leaves are Path values.
	Paths map[string]any

	// Params is the project parameter document.
	Params map[string]any

	// Files is the file-name template document.
	Files map[string]any

	// Placeholders lists params.placeholders in document order. Order is a
	// correctness contract: each expression may reference earlier entries.
	Placeholders []Placeholder
}

// Placeholder is one name → template-expression pair from params.placeholders.
type Placeholder struct {
	Name string
	Expr string
}

// LoadError reports a configuration document that exists but could not be
// read or parsed. It is fatal: loading stops at the first occurrence.
type LoadError struct {
	File string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load config file %s: %v", e.File, e.Err)
}

// Unwrap exposes the underlying parse or I/O error.
func (e *LoadError) Unwrap() error { return e.Err }
