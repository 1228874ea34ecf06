package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema is a compiled JSON schema for structured model output. The raw
// document is also what gets sent to the backend.
type Schema struct {
	name     string
	raw      json.RawMessage
	compiled *jsonschema.Schema
}

// CompileSchema compiles a JSON schema document.
func CompileSchema(name, document string) (*Schema, error) {
	if !json.Valid([]byte(document)) {
		return nil, fmt.Errorf("schema %s: not valid JSON", name)
	}

	compiler := jsonschema.NewCompiler()
	url := name + ".json"
	if err := compiler.AddResource(url, strings.NewReader(document)); err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	return &Schema{
		name:     name,
		raw:      json.RawMessage(document),
		compiled: compiled,
	}, nil
}

// MustCompileSchema is CompileSchema for package-level schemas.
func MustCompileSchema(name, document string) *Schema {
	s, err := CompileSchema(name, document)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string { return s.name }

// Raw returns the schema document.
func (s *Schema) Raw() json.RawMessage { return s.raw }

// SchemaError locates the first violation found in a document.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Validate checks a decoded JSON value (maps, slices, float64, string, bool, nil).
func (s *Schema) Validate(doc any) error {
	err := s.compiled.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &SchemaError{Message: err.Error()}
	}
	return firstLeafCause(ve)
}

// firstLeafCause walks to the deepest first cause, which carries the most
// specific location and message.
func firstLeafCause(ve *jsonschema.ValidationError) *SchemaError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SchemaError{Path: pointerToPath(ve.InstanceLocation), Message: ve.Message}
}

// pointerToPath turns "/subtasks/0" into "subtasks[0]".
func pointerToPath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(pointer, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
