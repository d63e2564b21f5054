package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoad(t *testing.T) {
	// init() already ran; the registry must hold the semantic styles
	require.NotEmpty(t, StyleRegistry)

	for _, name := range []string{"Header", "TemplateName", "Hash", "Alias", "Success", "Warning", "Error", "Muted"} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "missing style %s", name)
	}
}

func TestGetStyleUnknownFallsBack(t *testing.T) {
	style := GetStyle("NoSuchStyle")
	assert.False(t, style.GetBold())
}

func TestBuildStyleAttributes(t *testing.T) {
	style := buildStyle(StyleDef{Bold: true, Width: 10})
	assert.True(t, style.GetBold())
	assert.Equal(t, 10, style.GetWidth())
}

func TestMergeStyles(t *testing.T) {
	merged := MergeStyles("Label", "Error")
	assert.True(t, merged.GetBold())
	assert.Equal(t, 14, merged.GetWidth())
}
