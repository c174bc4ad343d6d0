// Package importer orchestrates one Contaplus file import end to end:
// parse, aggregate, validate, persist, post.
package importer

import (
	"strings"

	"github.com/contabridge-dev/contabridge/internal/contaplus"
)

// Parser converts raw export bytes into decoded, filtered lines.
type Parser interface {
	Parse(data []byte) ([]contaplus.Line, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ContaplusParser{})
	return r
}

// ContaplusParser adapts the contaplus reader to the Parser interface.
type ContaplusParser struct{}

// Format returns the parser name.
func (p *ContaplusParser) Format() string { return "contaplus" }

// Parse decodes the file and drops lines without a postable account.
func (p *ContaplusParser) Parse(data []byte) ([]contaplus.Line, error) {
	return contaplus.Read(data)
}
