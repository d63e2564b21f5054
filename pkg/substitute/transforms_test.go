package substitute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransforms(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		input     string
		want      string
	}{
		{"kebab_from_pascal", ToKebabCase, "MyComponent", "my-component"},
		{"kebab_from_snake", ToKebabCase, "my_component", "my-component"},
		{"kebab_from_camel", ToKebabCase, "myComponent", "my-component"},
		{"pascal_from_snake", ToPascalCase, "my_component", "MyComponent"},
		{"pascal_from_kebab", ToPascalCase, "my-component", "MyComponent"},
		{"pascal_from_spaces", ToPascalCase, "my component", "MyComponent"},
		{"camel_from_pascal", ToCamelCase, "MyComponent", "myComponent"},
		{"camel_from_kebab", ToCamelCase, "my-component", "myComponent"},
		{"snake_from_pascal", ToSnakeCase, "MyComponent", "my_component"},
		{"snake_from_kebab", ToSnakeCase, "my-component", "my_component"},
		{"acronym_boundary", ToSnakeCase, "HTTPServer", "http_server"},
		{"digits", ToKebabCase, "v2Handler", "v2-handler"},
		{"single_word", ToPascalCase, "api", "Api"},
		{"empty", ToCamelCase, "", ""},
		{"only_separators", ToKebabCase, "__--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transform(tt.input))
		})
	}
}
