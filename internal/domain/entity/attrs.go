package entity

// Attrs is an open, schema-less key-value bag used for command parameters,
// command results and device metadata. Unknown keys are preserved as-is so
// clients can evolve their payloads without server changes.
type Attrs map[string]any

// Clone returns a shallow copy, safe to mutate at the top level.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}

	cloned := make(Attrs, len(a))
	for k, v := range a {
		cloned[k] = v
	}

	return cloned
}
