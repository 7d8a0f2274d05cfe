// Package template implements the template engine of §4.G: registration,
// undefined-variable discovery, and mustache rendering against the data
// schema Session assembles.
package template

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/cbroglie/mustache"
)

var reservedVariables = map[string]bool{
	"path":     true,
	"code":     true,
	"git_diff": true,
}

var undefinedVarPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Registry holds named, compiled templates (§4.G setup/render).
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*mustache.Template
}

// NewRegistry returns an empty, ready-to-use registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*mustache.Template)}
}

// Setup compiles templateSource and registers it under name. Compile
// failure is an error (§7 Template error: registration failure is fatal).
func (r *Registry) Setup(templateSource, name string) error {
	tmpl, err := mustache.ParseString(templateSource)
	if err != nil {
		return fmt.Errorf("registering template %q: %w", name, err)
	}
	r.mu.Lock()
	r.templates[name] = tmpl
	r.mu.Unlock()
	return nil
}

// Render renders the template registered under name against data, then
// trims leading/trailing whitespace (§4.G render, grounded on
// original_source's render_template which calls .trim() on the result).
func (r *Registry) Render(name string, data map[string]any) (string, error) {
	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("rendering template %q: not registered", name)
	}
	rendered, err := tmpl.Render(data)
	if err != nil {
		return "", fmt.Errorf("rendering template %q: %w", name, err)
	}
	return strings.TrimSpace(rendered), nil
}

// ExtractUndefined returns the names of `{{ var }}` placeholders in
// templateSource that are not in the reserved set {path, code, git_diff}.
// Only simple identifiers are recognized; block helpers and expressions
// are not enumerated (§4.G extract_undefined).
func ExtractUndefined(templateSource string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, match := range undefinedVarPattern.FindAllStringSubmatch(templateSource, -1) {
		name := match[1]
		if reservedVariables[name] || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
