package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltin(t *testing.T) {
	templates := Builtin()
	assert.Len(t, templates, 7)

	seen := map[ID]bool{}
	for _, tpl := range templates {
		assert.False(t, seen[tpl.ID], "duplicate id %s", tpl.ID)
		seen[tpl.ID] = true
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Color)
	}
	assert.True(t, seen[DefaultID])
}

func TestLookup(t *testing.T) {
	tpl, ok := Lookup(CleanTeal)
	assert.True(t, ok)
	assert.Equal(t, "Clean Modern", tpl.Name)

	_, ok = Lookup("unknown")
	assert.False(t, ok)
}
