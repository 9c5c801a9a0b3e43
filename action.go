package voltwire

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/voltwire/voltwire/lib/dom"
)

// Execute runs a named server action for a component. The source element,
// when present, is marked busy for the duration and is always released on
// every exit path — success, transport failure, or a bad response body.
// Failures are logged and swallowed; they never propagate to the caller and
// are never retried.
//
// Each execution takes a fresh request token and records it as the latest
// for the component. When the response arrives, property merges for this
// component are applied only if the token is still the latest, so a slow
// response cannot overwrite state a newer action already changed. HTML swaps
// and messages are applied regardless.
func (rt *Runtime) Execute(ctx context.Context, component, action string, source *dom.Element) {
	snapshot, ok := rt.registry.Snapshot(component)
	if !ok {
		rt.log.Debug("voltwire: action on unknown component",
			"component", component, "action", action)
		return
	}

	token := rt.beginAction(component, source)
	defer rt.endAction(component, source)

	form := buildActionForm(action, snapshot, source)
	resp, err := rt.client.Action(ctx, rt.host.Location().String(), form)
	if err != nil {
		rt.log.Error("voltwire: action failed",
			"component", component, "action", action, "err", err)
		return
	}

	rt.applyResponse(resp, component, token)
}

// beginAction records a fresh request token as the latest for the component,
// marks the source element busy, and flags the component's loading markers.
func (rt *Runtime) beginAction(component string, source *dom.Element) uuid.UUID {
	token := uuid.New()

	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.tokens[component] = token
	if source != nil {
		source.SetAttr(AttrBusy, "true")
		source.SetAttr("disabled", "")
	}
	for _, el := range rt.loadingMarkers(component) {
		el.SetAttr(AttrBusy, "true")
	}
	return token
}

// endAction clears the busy indicator and the loading markers. Runs deferred
// so no code path can leave an element permanently disabled.
func (rt *Runtime) endAction(component string, source *dom.Element) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if source != nil {
		source.RemoveAttr(AttrBusy)
		source.RemoveAttr("disabled")
	}
	for _, el := range rt.loadingMarkers(component) {
		el.RemoveAttr(AttrBusy)
	}
}

// loadingMarkers returns the elements in the component's subtree carrying the
// loading marker attribute. Called with rt.mu held.
func (rt *Runtime) loadingMarkers(component string) []*dom.Element {
	c, ok := rt.registry.Get(component)
	if !ok || c.Element() == nil {
		return nil
	}
	return c.Element().FindAll(func(e *dom.Element) bool {
		return e.HasAttr(AttrLoading)
	})
}

// buildActionForm flat-encodes the request payload: the reserved action
// field plus one field per component property. When the action originates
// from a form submission, the form's named controls are serialized on top,
// so unbound inputs reach the server and bound ones carry their committed
// values.
func buildActionForm(action string, props Props, source *dom.Element) url.Values {
	form := url.Values{}
	for k, v := range props {
		if k == ActionField {
			continue
		}
		form.Set(k, FormValue(v))
	}
	if source != nil && source.Tag() == "form" {
		serializeForm(source, form)
	}
	form.Set(ActionField, action)
	return form
}

// serializeForm writes a form's named control values into the payload,
// following browser submission rules: unchecked checkboxes and radios
// contribute nothing, and repeated names (checkbox groups) all submit. The
// first control seen for a name displaces the flat property field of the same
// name, so committed control values win over the property snapshot.
func serializeForm(formEl *dom.Element, out url.Values) {
	controls := formEl.FindAll(func(e *dom.Element) bool {
		switch e.Tag() {
		case "input", "textarea", "select":
			return e.Attr("name") != ""
		}
		return false
	})

	seen := make(map[string]bool)
	add := func(name, v string) {
		if !seen[name] {
			seen[name] = true
			out.Del(name)
		}
		out.Add(name, v)
	}

	for _, c := range controls {
		name := c.Attr("name")
		if name == ActionField {
			continue
		}
		switch {
		case c.Tag() == "input" && c.InputType() == "checkbox":
			if c.Checked() {
				v := c.Attr("value")
				if v == "" {
					v = "on"
				}
				add(name, v)
			}
		case c.Tag() == "input" && c.InputType() == "radio":
			if c.Checked() {
				add(name, c.Value())
			}
		default:
			add(name, c.Value())
		}
	}
}
