package voltwire

import (
	"context"
	"strings"

	"github.com/voltwire/voltwire/lib/dom"
)

// HandleEvent is the single dispatch entry point for all delegated event
// categories. It resolves the nearest enclosing component for the event
// target, classifies the target's declarative attribute once, and executes
// at most one action. Events with no enclosing component or no relevant
// attribute are ignored entirely.
//
// Action execution blocks through the server round trip; the host is
// expected to deliver events from its event loop, and the runtime releases
// its internal lock during network I/O so other events can interleave there,
// exactly like an awaited fetch.
func (rt *Runtime) HandleEvent(e *Event) {
	if e == nil || e.Target == nil {
		return
	}

	owner := e.Target.Closest(func(el *dom.Element) bool {
		return el.HasAttr(AttrComponent)
	})
	if owner == nil {
		return
	}
	name := owner.Attr(AttrComponent)

	res := resolveAction(e.Kind, e.Target)
	switch res.kind {
	case actionNone:
		// No declarative attribute for this category.

	case actionRemote:
		e.PreventDefault()
		if !rt.confirmAction(e.Target) {
			return
		}
		rt.Execute(context.Background(), name, res.value, e.Target)

	case actionToggle:
		e.PreventDefault()
		rt.toggle(name, res.value)

	case actionNavigate:
		if !navigable(res.value) {
			return
		}
		e.PreventDefault()
		rt.Navigate(context.Background(), res.value)

	case actionSubmit:
		e.PreventDefault()
		if !rt.confirmAction(e.Target) {
			return
		}
		rt.Execute(context.Background(), name, res.value, e.Target)

	case actionBindLive:
		if rt.bindValue(e, name, res.value) {
			rt.scheduleSync(name)
		}

	case actionBind:
		rt.bindValue(e, name, res.value)
	}
}

// confirmAction honors a vw:confirm guard on the action's element. The
// default is already suppressed at this point; declining just drops the
// action, like a canceled browser confirm dialog.
func (rt *Runtime) confirmAction(target *dom.Element) bool {
	msg := target.Attr(AttrConfirm)
	if msg == "" {
		return true
	}
	return rt.host.Confirm(msg)
}

// navigable reports whether a link target can be handed to the SPA
// navigator. Fragment-only links keep their default in-page behavior.
func navigable(href string) bool {
	return href != "" && !strings.HasPrefix(href, "#")
}

// toggle flips a boolean property in place. No network call is made; the
// component's vw:props blob is rewritten so the change survives a rescan,
// which doubles as the local re-render signal.
func (rt *Runtime) toggle(name, prop string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	ok := rt.registry.Update(name, func(c *Component) {
		c.Props.Toggle(prop)
		syncPropsAttr(c)
	})
	if !ok {
		rt.log.Debug("voltwire: toggle on unknown component", "component", name, "property", prop)
		return
	}
	rt.localChanged(name, prop)
}

// bindValue writes an input's value into the bound property. Input events
// always carry the raw string value; change (commit) events apply the
// per-control coercion rules. Returns whether the property was written.
func (rt *Runtime) bindValue(e *Event, name, prop string) bool {
	var value any
	switch e.Kind {
	case EventInput:
		value = e.Target.Value()
	case EventChange:
		v, ok := commitValue(e.Target)
		if !ok {
			return false
		}
		value = v
	default:
		return false
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	ok := rt.registry.Update(name, func(c *Component) {
		c.Props[prop] = value
		syncPropsAttr(c)
	})
	if !ok {
		rt.log.Debug("voltwire: binding on unknown component", "component", name, "property", prop)
		return false
	}
	rt.localChanged(name, prop)
	return true
}

// commitValue coerces a control's committed value per its kind: checkboxes
// bind their checked boolean, radios bind their value only when checked
// (an unchecked radio's change never nulls out the existing value), and
// everything else binds the raw string value.
func commitValue(el *dom.Element) (any, bool) {
	if el.Tag() != "input" {
		return el.Value(), true
	}
	switch el.InputType() {
	case "checkbox":
		return el.Checked(), true
	case "radio":
		if el.Checked() {
			return el.Value(), true
		}
		return nil, false
	default:
		return el.Value(), true
	}
}

// syncPropsAttr rewrites the component root's vw:props blob to match the
// registry snapshot, so a later rescan of the subtree sees current state.
// Called under the registry lock via Update.
func syncPropsAttr(c *Component) {
	if c.el != nil {
		c.el.SetAttr(AttrProps, c.Props.JSON())
	}
}

// localChanged fires the local-change hook, if configured. Called with
// rt.mu held.
func (rt *Runtime) localChanged(component, prop string) {
	if rt.onLocalChange != nil {
		rt.onLocalChange(component, prop)
	}
}
