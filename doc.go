// Package voltwire implements the VoltWire client runtime: the engine that
// turns declarative vw: attributes in an HTML document into reactive behavior
// backed by server round trips.
//
// The runtime discovers components (elements marked with vw:component and an
// optional vw:props JSON blob), routes DOM events to per-component actions,
// serializes component state into form-encoded POSTs against the current page
// URL, applies the server's structured response back into the live document,
// and drives single-page navigation with history integration. There is no
// virtual DOM; server fragments are swapped directly into the tree.
//
// # The Runtime
//
// A Runtime is constructed once per page against a parsed document and a
// Host (the browser environment: location, history, full navigation):
//
//	doc, _ := dom.ParseString(pageHTML)
//	rt := voltwire.New(doc, host)
//
// Events are delivered to a single entry point, the Go rendering of one
// delegated listener per event category at the document root:
//
//	rt.HandleEvent(voltwire.NewEvent(voltwire.EventClick, button))
//
// The dispatcher walks from the event target to the nearest enclosing
// component root, resolves the target's declarative attribute to a closed
// action kind, and executes at most one action per event.
//
// # Declarative surface
//
//	vw:component    component root marker, value is the component name
//	vw:props        JSON-encoded initial property mapping
//	vw:click        action id to run on activation
//	vw:toggle       property name to flip locally, no network
//	vw:navigate     opt a link into intercepted SPA navigation
//	vw:submit       action id to run on form submission
//	vw:model        bind an input's value to a property
//	vw:model.live   as vw:model, plus debounced server synchronization
//	vw:prefetch     opt a link into hover-triggered prefetch
//	vw:confirm      host prompt guarding the element's action
//	vw:loading      loading indicator, flagged busy during the component's actions
//
// # Server contract
//
// Actions POST to the current page URL with X-VoltWire-Request and
// X-Requested-With headers; the reserved voltwire_action field carries the
// action id and every component property is a flat form field. The JSON
// response may carry redirect, html, properties, title, errors and messages
// fields, applied in that order (a redirect short-circuits everything else).
// SPA navigations GET the target URL with the X-VoltWire-SPA header and swap
// the main landmark of the fetched document into the live one.
//
// No failure in this layer is fatal to the page: transport and parse errors
// are logged and swallowed, missing patch targets are no-ops, and a failed
// SPA navigation falls back to a full browser navigation.
package voltwire
