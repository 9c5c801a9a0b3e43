package voltwire

import "github.com/voltwire/voltwire/lib/dom"

// Component is a named, stateful region of the document. The registry holds
// the authoritative property snapshot; the element reference is non-owning
// (the document owns node lifetime) and is refreshed whenever the subtree is
// replaced and rediscovered.
type Component struct {
	// Name is the component's unique registry key, from vw:component.
	Name string

	// Props is the current property snapshot. Mutate through Registry.Update
	// so observers never see a partially written entry.
	Props Props

	// Errors holds the most recent per-field validation errors returned by
	// the server, or nil. Cleared on the next successful response for this
	// component.
	Errors map[string][]string

	el *dom.Element
}

// Element returns the component's current root element. It may be stale if
// the subtree was replaced without a rescan; Registry.Rescan refreshes it.
func (c *Component) Element() *dom.Element {
	return c.el
}

// snapshot returns a copy safe to read outside the registry lock.
func (c *Component) snapshot() Props {
	return c.Props.Clone()
}
