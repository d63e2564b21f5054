// Package substitute implements {{name}} placeholder expansion for template
// content and paths. Expansion is iterative and depth-bounded: a resolved
// value may itself contain placeholders, so the engine re-expands up to a
// configured maximum depth instead of recursing, and either fails or
// truncates when the bound is hit. That bound is the engine's core safety
// property.
package substitute

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
)

// Defaults for Options
const (
	DefaultEscapeMarker = `\`
	DefaultMaxDepth     = 10
)

// escapeSentinel temporarily hides escaped openers from the placeholder
// scanner. Null bytes cannot appear in template text.
const escapeSentinel = "\x00esc\x00"

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*(?:\|\s*([A-Za-z][A-Za-z0-9_-]*)\s*)?\}\}`)

// Options configure an Engine
type Options struct {
	// EscapeMarker placed before "{{" emits a literal placeholder instead
	// of substituting. Defaults to a backslash.
	EscapeMarker string

	// PreserveEscapes keeps the escape marker in the output; when false
	// (the default) the marker is stripped and only the literal "{{...}}"
	// remains.
	PreserveEscapes bool

	// ThrowOnMissing fails on unresolved variables, enumerating every
	// unresolved name found in the pass. When false, unresolved variables
	// substitute as the empty string.
	ThrowOnMissing bool

	// MaxDepth bounds re-expansion of values that contain placeholders
	MaxDepth int

	// AllowCircular truncates expansion at MaxDepth, leaving remaining
	// placeholders verbatim, instead of failing
	AllowCircular bool
}

// Engine expands placeholders against a variable bag
type Engine struct {
	vars       map[string]string
	specials   map[string]SpecialVariable
	transforms map[string]Transform
	opts       Options
}

// New creates an Engine over the given variable bag
func New(vars map[string]string, opts Options) *Engine {
	if opts.EscapeMarker == "" {
		opts.EscapeMarker = DefaultEscapeMarker
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if vars == nil {
		vars = map[string]string{}
	}

	return &Engine{
		vars:       vars,
		specials:   defaultSpecials(),
		transforms: defaultTransforms(),
		opts:       opts,
	}
}

// WithSpecial registers an additional special variable provider
func (e *Engine) WithSpecial(name string, provider SpecialVariable) *Engine {
	e.specials[name] = provider
	return e
}

// WithTransform registers an additional named transform
func (e *Engine) WithTransform(name string, transform Transform) *Engine {
	e.transforms[name] = transform
	return e
}

// Substitute expands every placeholder in content. Content without
// placeholders is returned unchanged.
func (e *Engine) Substitute(content string) (string, error) {
	text := strings.ReplaceAll(content, e.opts.EscapeMarker+"{{", escapeSentinel)

	for depth := 0; placeholderPattern.MatchString(text); depth++ {
		if depth >= e.opts.MaxDepth {
			if e.opts.AllowCircular {
				// Truncate: remaining placeholders stay verbatim
				break
			}
			return "", errors.Newf(errors.ErrSubstitutionDepth,
				"substitution exceeded maximum depth %d; variable values likely reference each other circularly",
				e.opts.MaxDepth)
		}

		expanded, err := e.expandOnce(text)
		if err != nil {
			return "", err
		}
		text = expanded
	}

	return e.restoreEscapes(text), nil
}

// expandOnce performs a single left-to-right expansion pass. Values
// substituted in are not rescanned until the next pass.
func (e *Engine) expandOnce(text string) (string, error) {
	var missing []string
	var badTransforms []string

	result := placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		name, transformName := groups[1], groups[2]

		value, ok := e.resolve(name)
		if !ok {
			missing = append(missing, name)
			return ""
		}

		if transformName != "" {
			transform, ok := e.transforms[transformName]
			if !ok {
				badTransforms = append(badTransforms, transformName)
				return match
			}
			value = transform(value)
		}

		return value
	})

	if len(badTransforms) > 0 {
		return "", errors.Newf(errors.ErrInvalidTransform,
			"unknown transform(s): %s", strings.Join(dedupe(badTransforms), ", "))
	}

	if e.opts.ThrowOnMissing && len(missing) > 0 {
		names := dedupe(missing)
		sort.Strings(names)
		return "", errors.Newf(errors.ErrMissingVariable,
			"unresolved variable(s): %s", strings.Join(names, ", ")).
			WithDetail("variables", names)
	}

	return result, nil
}

// resolve looks a name up in the variable bag, then the specials
func (e *Engine) resolve(name string) (string, bool) {
	if value, ok := e.vars[name]; ok {
		return value, true
	}
	if provider, ok := e.specials[name]; ok {
		return provider(), true
	}
	return "", false
}

// restoreEscapes reverses escape protection, keeping or stripping the
// marker per PreserveEscapes
func (e *Engine) restoreEscapes(text string) string {
	if e.opts.PreserveEscapes {
		return strings.ReplaceAll(text, escapeSentinel, e.opts.EscapeMarker+"{{")
	}
	return strings.ReplaceAll(text, escapeSentinel, "{{")
}

// InPath expands placeholders in a path string and guards against traversal:
// a variable value must not be able to escape the directory the path is
// rooted under, so absolute results and results reaching above their root
// are rejected.
func (e *Engine) InPath(path string) (string, error) {
	expanded, err := e.Substitute(path)
	if err != nil {
		return "", err
	}

	cleaned := filepath.Clean(expanded)
	if filepath.IsAbs(cleaned) {
		return "", errors.Newf(errors.ErrPathTraversal,
			"substituted path %q is absolute", expanded)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrPathTraversal,
			"substituted path %q escapes its root", expanded)
	}

	return cleaned, nil
}

// ExtractVariables returns the de-duplicated variable names referenced in
// content, in order of first appearance, without substituting anything.
func ExtractVariables(content string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, groups := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		name := groups[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
