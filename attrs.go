package voltwire

import "github.com/a-h/templ"

// Markup builders for Go servers emitting VoltWire markup with templ.
// These produce the declarative attribute surface the runtime consumes;
// everything else on the element is up to the template.

// ComponentAttrs marks an element as a component root with its initial
// property blob.
//
//	<div { voltwire.ComponentAttrs("counter", props)... }>
func ComponentAttrs(name string, props Props) templ.Attributes {
	attrs := templ.Attributes{AttrComponent: name}
	if len(props) > 0 {
		attrs[AttrProps] = props.JSON()
	}
	return attrs
}

// ClickAttrs wires an activation action.
func ClickAttrs(action string) templ.Attributes {
	return templ.Attributes{AttrClick: action}
}

// ToggleAttrs wires a local boolean toggle.
func ToggleAttrs(property string) templ.Attributes {
	return templ.Attributes{AttrToggle: property}
}

// SubmitAttrs wires a form submission action.
func SubmitAttrs(action string) templ.Attributes {
	return templ.Attributes{AttrSubmit: action}
}

// ModelAttrs binds an input to a property. The live variant opts into
// debounced server synchronization on every input event.
func ModelAttrs(property string, live bool) templ.Attributes {
	if live {
		return templ.Attributes{AttrModelLive: property}
	}
	return templ.Attributes{AttrModel: property}
}

// NavigateAttrs opts a link into intercepted SPA navigation, optionally
// with hover prefetch.
func NavigateAttrs(prefetch bool) templ.Attributes {
	attrs := templ.Attributes{AttrNavigate: ""}
	if prefetch {
		attrs[AttrPrefetch] = ""
	}
	return attrs
}
