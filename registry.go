package voltwire

import (
	"log/slog"
	"sync"

	"github.com/voltwire/voltwire/lib/dom"
)

// Registry tracks every discovered component and its current property
// values. There is at most one live entry per component name: re-discovery
// overwrites, never merges with stale data — the last discovery wins.
//
// All mutation goes through the registry so re-entrant response application
// (a message handler firing another action) can never observe a partially
// written entry.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*Component
	log        *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		components: make(map[string]*Component),
		log:        logger,
	}
}

// Discover scans root for every element carrying the component marker and
// creates or overwrites an entry for each. Nested components are all
// registered regardless of depth; event routing separately resolves to the
// nearest enclosing marker. Returns the number of components registered.
func (r *Registry) Discover(root *dom.Element) int {
	if root == nil {
		return 0
	}
	marked := root.FindAll(func(e *dom.Element) bool {
		return e.HasAttr(AttrComponent)
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, el := range marked {
		name := el.Attr(AttrComponent)
		if name == "" {
			r.log.Debug("voltwire: skipping unnamed component marker", "tag", el.Tag())
			continue
		}
		r.components[name] = &Component{
			Name:  name,
			Props: ParseProps(el.Attr(AttrProps)),
			el:    el,
		}
		n++
	}
	return n
}

// Rescan re-discovers a single subtree after it has been replaced. Entries
// rooted outside the subtree are untouched; entries inside it get fresh
// element references and property snapshots from the new markup.
func (r *Registry) Rescan(subtree *dom.Element) int {
	return r.Discover(subtree)
}

// Get looks up a component by name. An absent result is a valid, expected
// outcome, not an error.
func (r *Registry) Get(name string) (*Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Snapshot returns a copy of the named component's current properties, safe
// to use outside the registry lock.
func (r *Registry) Snapshot(name string) (Props, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	if !ok {
		return nil, false
	}
	return c.snapshot(), true
}

// Update runs fn against the named component under the registry lock.
// Returns false when the component does not exist; fn is then not called.
func (r *Registry) Update(name string, fn func(*Component)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.components[name]
	if !ok {
		return false
	}
	fn(c)
	return true
}

// Merge shallow-merges patch into the named component's properties.
// A missing component is a no-op, per the application error policy.
func (r *Registry) Merge(name string, patch Props) bool {
	return r.Update(name, func(c *Component) {
		c.Props.Merge(patch)
	})
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

// Names returns the registered component names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.components))
	for name := range r.components {
		out = append(out, name)
	}
	return out
}
