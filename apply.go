package voltwire

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/voltwire/voltwire/lib/dom"
)

// Response is the structured body of an action response. Every field is
// optional and independent: absence of one never blocks another. Fields are
// applied in declaration order, except that a redirect short-circuits
// everything else.
type Response struct {
	// Success reports whether the server handled the action. Informational;
	// application proceeds either way from whatever fields are present.
	Success bool `json:"success"`

	// Redirect triggers an immediate full-page navigation. Once present,
	// all other fields are skipped.
	Redirect string `json:"redirect,omitempty"`

	// HTML is a replacement fragment rooted at a component marker. Its
	// inner content replaces the matching live component's inner content.
	HTML string `json:"html,omitempty"`

	// Properties maps component names to partial property patches, merged
	// shallowly into existing state. Merging does not re-render by itself.
	Properties map[string]Props `json:"properties,omitempty"`

	// Title, when present, replaces the document title.
	Title string `json:"title,omitempty"`

	// Errors carries per-field validation errors for the acting component.
	Errors map[string][]string `json:"errors,omitempty"`

	// Messages are transient notifications rendered as self-dismissing
	// toasts.
	Messages []Message `json:"messages,omitempty"`
}

// Apply interprets a structured response with no originating action, e.g.
// one arriving through a side channel. Property merges are unguarded.
func (rt *Runtime) Apply(resp *Response) {
	rt.applyResponse(resp, "", uuid.Nil)
}

// applyResponse applies a response on behalf of the named acting component.
// token guards property merges into that component against staleness; zero
// values disable the guard.
func (rt *Runtime) applyResponse(resp *Response, origin string, token uuid.UUID) {
	if resp == nil {
		return
	}

	if resp.Redirect != "" {
		rt.host.Assign(resp.Redirect)
		return
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if resp.HTML != "" {
		if err := rt.swapFragment(resp.HTML); err != nil {
			// Per the error policy a useless fragment is dropped, not fatal.
			rt.log.Debug("voltwire: fragment not applied", "err", err)
		}
	}

	for name, patch := range resp.Properties {
		if name == origin && token != uuid.Nil && rt.tokens[origin] != token {
			rt.log.Debug("voltwire: dropping stale property merge",
				"component", name)
			continue
		}
		if !rt.registry.Merge(name, patch) {
			// Absent component: expected under async DOM mutation, no-op.
			rt.log.Debug("voltwire: property merge for absent component",
				"component", name)
		}
	}

	if resp.Title != "" {
		rt.doc.SetTitle(resp.Title)
	}

	if origin != "" {
		rt.registry.Update(origin, func(c *Component) {
			c.Errors = resp.Errors
		})
	}

	for _, m := range resp.Messages {
		rt.showMessage(m)
	}
}

// swapFragment locates the live component matching the fragment's component
// root and replaces its inner content, then rediscovers the subtree. The
// fragment root's property blob is carried over so the rescan picks up the
// new snapshot. The returned error classifies why a fragment could not be
// applied; callers treat every case as a logged no-op. Called with rt.mu held.
func (rt *Runtime) swapFragment(fragment string) error {
	els, err := dom.ParseFragment(fragment)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	var root *dom.Element
	for _, el := range els {
		if root = el.Find(func(e *dom.Element) bool {
			return e.HasAttr(AttrComponent)
		}); root != nil {
			break
		}
	}
	if root == nil {
		return ErrNoComponentRoot
	}

	name := root.Attr(AttrComponent)
	live := rt.doc.Find(func(e *dom.Element) bool {
		return e.Attr(AttrComponent) == name
	})
	if live == nil {
		return fmt.Errorf("%w: no live element for %q", ErrComponentNotFound, name)
	}

	if err := live.SetInnerHTML(root.InnerHTML()); err != nil {
		return fmt.Errorf("%w: swap for %q: %v", ErrBadResponse, name, err)
	}
	if root.HasAttr(AttrProps) {
		live.SetAttr(AttrProps, root.Attr(AttrProps))
	}
	rt.registry.Rescan(live)
	return nil
}
