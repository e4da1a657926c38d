package scaffold

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ViewContext is the ordered set of variables available to templates.
// Values are strings, numbers, booleans or nested *ViewContext values.
// A nil *ViewContext reads as empty.
type ViewContext struct {
	vars *orderedmap.OrderedMap[string, any]
}

// NewViewContext returns an empty context.
func NewViewContext() *ViewContext {
	return &ViewContext{vars: orderedmap.New[string, any]()}
}

// ViewContextFrom builds a context from alternating key/value pairs.
// Odd trailing keys are ignored.
func ViewContextFrom(kv ...any) *ViewContext {
	vc := NewViewContext()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		vc.Set(key, kv[i+1])
	}
	return vc
}

// Set stores value under key. Re-setting a key keeps its original position.
func (vc *ViewContext) Set(key string, value any) {
	if vc.vars == nil {
		vc.vars = orderedmap.New[string, any]()
	}
	vc.vars.Set(key, value)
}

// Get returns the value stored under key.
func (vc *ViewContext) Get(key string) (any, bool) {
	if vc == nil || vc.vars == nil {
		return nil, false
	}
	return vc.vars.Get(key)
}

// Has reports whether key is present.
func (vc *ViewContext) Has(key string) bool {
	_, ok := vc.Get(key)
	return ok
}

// Len returns the number of top-level variables.
func (vc *ViewContext) Len() int {
	if vc == nil || vc.vars == nil {
		return 0
	}
	return vc.vars.Len()
}

// Keys returns the variable names in insertion order.
func (vc *ViewContext) Keys() []string {
	if vc == nil || vc.vars == nil {
		return nil
	}
	keys := make([]string, 0, vc.vars.Len())
	for pair := vc.vars.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Merge copies every variable of other into vc, overwriting existing keys.
func (vc *ViewContext) Merge(other *ViewContext) {
	if other == nil || other.vars == nil {
		return
	}
	for pair := other.vars.Oldest(); pair != nil; pair = pair.Next() {
		vc.Set(pair.Key, cloneValue(pair.Value))
	}
}

// Clone returns a deep copy. Generators and render hooks always receive a
// clone so they cannot mutate the run's context.
func (vc *ViewContext) Clone() *ViewContext {
	out := NewViewContext()
	if vc == nil || vc.vars == nil {
		return out
	}
	for pair := vc.vars.Oldest(); pair != nil; pair = pair.Next() {
		out.vars.Set(pair.Key, cloneValue(pair.Value))
	}
	return out
}

// Map flattens the context into plain maps for template engines.
func (vc *ViewContext) Map() map[string]any {
	out := make(map[string]any, vc.Len())
	if vc == nil || vc.vars == nil {
		return out
	}
	for pair := vc.vars.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = plainValue(pair.Value)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *ViewContext:
		return val.Clone()
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = cloneValue(inner)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, inner := range val {
			a[i] = cloneValue(inner)
		}
		return a
	default:
		return val
	}
}

func plainValue(v any) any {
	switch val := v.(type) {
	case *ViewContext:
		return val.Map()
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = plainValue(inner)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, inner := range val {
			a[i] = plainValue(inner)
		}
		return a
	default:
		return val
	}
}
