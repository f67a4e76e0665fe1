// Package substitute implements the non-recursive {{variable}} substitution
// engine every template-driven generator expands text through.
package substitute

import "strings"

// Expand replaces every {{name}} occurrence in template with vars[name].
// Unresolved placeholders are left literal — that is not an error, it
// permits layered substitution where a later pass fills in what an earlier
// one left behind. Replacement values are never themselves re-scanned.
func Expand(template string, vars map[string]string) string {
	var b strings.Builder
	i := 0
	for i < len(template) {
		start := strings.Index(template[i:], "{{")
		if start == -1 {
			b.WriteString(template[i:])
			break
		}
		start += i
		b.WriteString(template[i:start])

		end := strings.Index(template[start:], "}}")
		if end == -1 {
			b.WriteString(template[start:])
			break
		}
		end += start

		name := template[start+2 : end]
		if val, ok := vars[name]; ok {
			b.WriteString(val)
		} else {
			b.WriteString(template[start : end+2])
		}
		i = end + 2
	}
	return b.String()
}

// Context is a mutable variable namespace builder, convenient for the
// generators that accumulate bindings incrementally (giver name, then
// target, then destination...).
type Context struct {
	vars map[string]string
}

// NewContext returns an empty substitution context.
func NewContext() *Context {
	return &Context{vars: make(map[string]string)}
}

// Set binds a variable name to a value.
func (c *Context) Set(name, value string) *Context {
	c.vars[name] = value
	return c
}

// Vars returns the accumulated variable map.
func (c *Context) Vars() map[string]string {
	return c.vars
}

// Expand expands template against this context's accumulated variables.
func (c *Context) Expand(template string) string {
	return Expand(template, c.vars)
}
