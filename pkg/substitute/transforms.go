package substitute

import (
	"strings"
	"unicode"
)

// Transform names accepted in {{name|transform}} placeholders
const (
	TransformCamelCase  = "camelCase"
	TransformKebabCase  = "kebab-case"
	TransformSnakeCase  = "snake_case"
	TransformPascalCase = "PascalCase"
)

// Transform converts a resolved value to another casing convention
type Transform func(string) string

// defaultTransforms returns the built-in named transforms. All are pure
// ASCII-oriented case conversions with no locale sensitivity.
func defaultTransforms() map[string]Transform {
	return map[string]Transform{
		TransformCamelCase:  ToCamelCase,
		TransformKebabCase:  ToKebabCase,
		TransformSnakeCase:  ToSnakeCase,
		TransformPascalCase: ToPascalCase,
	}
}

// splitWords breaks an identifier into lowercase words. Separators are any
// non-alphanumeric runes; case boundaries inside a run also split, so
// "MyComponent", "my-component" and "my_component" all yield [my component].
func splitWords(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}

		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			next := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && next) {
				flush()
			}
		}

		current.WriteRune(r)
	}
	flush()

	return words
}

// ToCamelCase converts a value to camelCase
func ToCamelCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// ToPascalCase converts a value to PascalCase
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// ToKebabCase converts a value to kebab-case
func ToKebabCase(s string) string {
	return strings.Join(splitWords(s), "-")
}

// ToSnakeCase converts a value to snake_case
func ToSnakeCase(s string) string {
	return strings.Join(splitWords(s), "_")
}

func capitalize(w string) string {
	if w == "" {
		return ""
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
