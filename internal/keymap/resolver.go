package keymap

import (
	"slices"
	"strings"
)

// Resolver maps pressed keys to board actions.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string // first-bound order, no duplicates
}

// NewResolver indexes bindings. A key bound twice resolves to its last binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.actions[key] = b.Action
			if !slices.Contains(r.keys[b.Action], key) {
				r.keys[b.Action] = append(r.keys[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action for a key, or "" if the key is unbound.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}

// Fraction returns the seek target of a digit key bound to ActionSeekTenth:
// "3" is 0.3, "0" is the start.
func (r *Resolver) Fraction(key string) (float64, bool) {
	if r.actions[key] != ActionSeekTenth || len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	return float64(key[0]-'0') / 10, true
}

// Label returns the help label for an action: its display keys joined by
// "/", with a full digit row shown as "0-9".
func (r *Resolver) Label(action Action) string {
	keys := r.keys[action]
	if digitRow(keys) {
		return "0-9"
	}
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = DisplayKey(k)
	}
	return strings.Join(labels, "/")
}

func digitRow(keys []string) bool {
	if len(keys) != 10 {
		return false
	}
	for _, k := range keys {
		if len(k) != 1 || k[0] < '0' || k[0] > '9' {
			return false
		}
	}
	return true
}
