package value

import (
	"slices"
)

// detach returns v ready to be stored inside target. Lists and maps never
// contain themselves: when v reaches target, the containers on every path
// from v back to target are copied, so the stored value holds the target's
// current contents instead of the target itself. changed reports whether a
// copy was made.
func detach(target any, v Value) (Value, bool) {
	switch x := v.(type) {
	case *List:
		if any(x) == target {
			return ListOf(slices.Clone(x.items)), true
		}
		var out []Value
		for i, it := range x.items {
			d, changed := detach(target, it)
			if !changed {
				continue
			}
			if out == nil {
				out = slices.Clone(x.items)
			}
			out[i] = d
		}
		if out == nil {
			return v, false
		}
		return ListOf(out), true
	case *Map:
		if any(x) == target {
			return x.clone(), true
		}
		keys := slices.Clone(x.keys)
		vals := slices.Clone(x.vals)
		changed := false
		for i := range keys {
			k, kc := detach(target, keys[i])
			val, vc := detach(target, vals[i])
			keys[i], vals[i] = k, val
			changed = changed || kc || vc
		}
		if !changed {
			return v, false
		}
		m := NewMap()
		for i := range keys {
			m.Put(keys[i], vals[i])
		}
		return m, true
	default:
		return v, false
	}
}
