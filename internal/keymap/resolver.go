package keymap

// Resolver maps key strings to actions.
type Resolver struct {
	byKey map[string]Action
}

// NewResolver creates a resolver from bindings. Keys are expected to be
// unique across contexts; a later binding of the same key wins.
func NewResolver(bindings []Binding) *Resolver {
	byKey := make(map[string]Action, len(bindings))
	for _, b := range bindings {
		for _, key := range b.Keys {
			byKey[key] = b.Action
		}
	}
	return &Resolver{byKey: byKey}
}

// Resolve returns the action for a key, or empty string if not bound.
// Bindings name the space bar "space", which bubbletea reports as " ".
func (r *Resolver) Resolve(key string) Action {
	if key == " " {
		key = "space"
	}
	return r.byKey[key]
}
