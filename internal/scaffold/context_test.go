package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewContext_PreservesOrder(t *testing.T) {
	vc := NewViewContext()
	vc.Set("zeta", 1)
	vc.Set("alpha", "a")
	vc.Set("mid", true)
	vc.Set("zeta", 2)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, vc.Keys())
	v, ok := vc.Get("zeta")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestViewContext_CloneIsDeep(t *testing.T) {
	nested := ViewContextFrom("host", "localhost")
	vc := ViewContextFrom("name", "app", "db", nested)

	clone := vc.Clone()
	clone.Set("name", "other")
	inner, _ := clone.Get("db")
	inner.(*ViewContext).Set("host", "remote")

	name, _ := vc.Get("name")
	host, _ := nested.Get("host")
	assert.Equal(t, "app", name)
	assert.Equal(t, "localhost", host)
}

func TestViewContext_NilIsEmpty(t *testing.T) {
	var vc *ViewContext
	assert.Equal(t, 0, vc.Len())
	assert.Nil(t, vc.Keys())
	assert.False(t, vc.Has("x"))
	assert.Equal(t, 0, vc.Clone().Len())
	assert.Empty(t, vc.Map())
}

func TestViewContext_MapFlattensNested(t *testing.T) {
	vc := ViewContextFrom("db", ViewContextFrom("port", 5432))
	assert.Equal(t, map[string]any{"db": map[string]any{"port": 5432}}, vc.Map())
}

func TestViewContext_Merge(t *testing.T) {
	vc := ViewContextFrom("a", 1, "b", 2)
	vc.Merge(ViewContextFrom("b", 3, "c", 4))
	vc.Merge(nil)

	assert.Equal(t, []string{"a", "b", "c"}, vc.Keys())
	b, _ := vc.Get("b")
	assert.Equal(t, 3, b)
}
