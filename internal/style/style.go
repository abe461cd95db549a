// Package style holds style records for rendered components
// and the immutable theme they're drawn from.
package style

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Style maps CSS property names to values.
//
// Style values are treated as immutable:
// operations on them return new values.
type Style map[string]string

// Merge combines base with the given overrides, left to right.
// On key collision, the last write wins.
//
// None of the arguments are modified.
func Merge(base Style, overrides ...Style) Style {
	out := make(Style, len(base))
	maps.Copy(out, base)
	for _, o := range overrides {
		maps.Copy(out, o)
	}
	return out
}

// CSS renders the style as an inline CSS declaration list.
// Properties are sorted by name so that output is deterministic.
func (s Style) CSS() string {
	var sb strings.Builder
	for i, k := range slices.Sorted(maps.Keys(s)) {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(s[k])
	}
	return sb.String()
}

// ParseDeclaration parses a single "property=value"
// or "property: value" pair.
func ParseDeclaration(s string) (key, value string, err error) {
	idx := strings.IndexAny(s, "=:")
	if idx < 0 {
		return "", "", fmt.Errorf("expected form 'property=value', got %q", s)
	}

	key = strings.TrimSpace(s[:idx])
	value = strings.TrimSpace(s[idx+1:])
	if key == "" {
		return "", "", fmt.Errorf("empty property name in %q", s)
	}
	return key, value, nil
}

// ParseDeclarations parses a semicolon-separated declaration list
// like "color: red; padding: 1em".
// Empty declarations are ignored.
func ParseDeclarations(s string) (Style, error) {
	out := make(Style)
	for _, decl := range strings.Split(s, ";") {
		if strings.TrimSpace(decl) == "" {
			continue
		}
		k, v, err := ParseDeclaration(decl)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// Declaration is a single style property.
// It implements flag.Getter so that it can be passed on the command line
// as "property=value".
type Declaration struct {
	Property string
	Value    string
}

// Get returns the declaration.
func (d *Declaration) Get() any { return *d }

// String returns the declaration in "property=value" form.
func (d *Declaration) String() string {
	if d.Property == "" {
		return ""
	}
	return d.Property + "=" + d.Value
}

// Set parses a "property=value" pair.
func (d *Declaration) Set(s string) error {
	k, v, err := ParseDeclaration(s)
	if err != nil {
		return err
	}
	d.Property, d.Value = k, v
	return nil
}

// FromDeclarations builds a Style from a list of declarations.
// Later declarations override earlier ones.
func FromDeclarations(decls []Declaration) Style {
	out := make(Style, len(decls))
	for _, d := range decls {
		out[d.Property] = d.Value
	}
	return out
}
