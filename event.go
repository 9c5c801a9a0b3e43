package voltwire

import "github.com/voltwire/voltwire/lib/dom"

// EventKind classifies the DOM event categories the runtime listens for.
// One delegated listener per kind is attached at the document level; the
// runtime never installs per-element listeners.
type EventKind int

const (
	// EventClick is element activation.
	EventClick EventKind = iota

	// EventSubmit is form submission.
	EventSubmit

	// EventInput fires on every keystroke-level value change.
	EventInput

	// EventChange fires on value commit (blur, selection finalize).
	EventChange
)

func (k EventKind) String() string {
	switch k {
	case EventClick:
		return "click"
	case EventSubmit:
		return "submit"
	case EventInput:
		return "input"
	case EventChange:
		return "change"
	default:
		return "unknown"
	}
}

// Event is a DOM event delivered to the runtime. Target is the original
// event target, not the component root it resolves to.
type Event struct {
	Kind   EventKind
	Target *dom.Element

	defaultPrevented bool
}

// NewEvent builds an event for dispatch.
func NewEvent(kind EventKind, target *dom.Element) *Event {
	return &Event{Kind: kind, Target: target}
}

// PreventDefault marks the browser's default action as suppressed. The host
// layer reads this after HandleEvent returns.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether the runtime claimed the event.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// actionKind is the closed set of behaviors an event target can resolve to.
// Resolution happens exactly once per event, so the per-category handlers
// are exhaustive switches rather than open-ended attribute probing.
type actionKind int

const (
	actionNone actionKind = iota
	actionRemote
	actionToggle
	actionNavigate
	actionSubmit
	actionBindLive
	actionBind
)

// resolved is the outcome of attribute resolution: what to do and the
// attribute value driving it (action id, property name, or href).
type resolved struct {
	kind  actionKind
	value string
}

// resolveAction inspects the original event target for the declarative
// attribute relevant to the event category, in the category's fixed priority
// order. An element resolves to at most one kind per event.
func resolveAction(kind EventKind, target *dom.Element) resolved {
	switch kind {
	case EventClick:
		if v := target.Attr(AttrClick); v != "" {
			return resolved{kind: actionRemote, value: v}
		}
		if v := target.Attr(AttrToggle); v != "" {
			return resolved{kind: actionToggle, value: v}
		}
		if target.IsLink() && target.HasAttr(AttrNavigate) {
			return resolved{kind: actionNavigate, value: target.Attr("href")}
		}
	case EventSubmit:
		if v := target.Attr(AttrSubmit); v != "" {
			return resolved{kind: actionSubmit, value: v}
		}
	case EventInput, EventChange:
		if v := target.Attr(AttrModelLive); v != "" {
			return resolved{kind: actionBindLive, value: v}
		}
		if v := target.Attr(AttrModel); v != "" {
			return resolved{kind: actionBind, value: v}
		}
	}
	return resolved{kind: actionNone}
}
