package voltwire

// Declarative attributes consumed from markup. The server/template layer
// produces these; the runtime only reads them.
const (
	// AttrComponent marks an element as a component root. Its value is the
	// component name.
	AttrComponent = "vw:component"

	// AttrProps carries the JSON-encoded initial property mapping for a
	// component root. A malformed blob yields an empty property set.
	AttrProps = "vw:props"

	// AttrClick names the action to execute when the element is activated.
	AttrClick = "vw:click"

	// AttrToggle names a boolean property to flip locally on activation.
	// Toggles never contact the server.
	AttrToggle = "vw:toggle"

	// AttrNavigate opts a link into intercepted SPA navigation.
	AttrNavigate = "vw:navigate"

	// AttrSubmit names the action to execute when the form is submitted.
	AttrSubmit = "vw:submit"

	// AttrModel binds an input's value to a component property. The live
	// variant additionally triggers debounced server synchronization on
	// every input event.
	AttrModel     = "vw:model"
	AttrModelLive = "vw:model.live"

	// AttrPrefetch opts a link into hover-triggered prefetch.
	AttrPrefetch = "vw:prefetch"

	// AttrConfirm guards an action element: the host prompts with the
	// attribute text and a declined prompt aborts the action.
	AttrConfirm = "vw:confirm"

	// AttrLoading marks an element as a loading indicator. Markers inside a
	// component get AttrBusy while one of its actions is in flight, so
	// styling can reveal spinners from the same hook.
	AttrLoading = "vw:loading"

	// AttrBusy is set on an action's source element while its request is in
	// flight, together with disabled. Both are cleared on every exit path.
	AttrBusy = "data-voltwire-busy"
)

// Request headers. The server distinguishes runtime traffic from plain form
// posts and full-page loads by these.
const (
	// HeaderRequest marks an action POST as runtime-originated.
	HeaderRequest = "X-VoltWire-Request"

	// HeaderSPA marks a GET as an SPA navigation request.
	HeaderSPA = "X-VoltWire-SPA"

	// HeaderPrefetch marks a GET as a hover prefetch. The response body is
	// discarded.
	HeaderPrefetch = "X-VoltWire-Prefetch"

	// HeaderRequestedWith carries the standard asynchronous-request marker.
	HeaderRequestedWith = "X-Requested-With"

	// XMLHTTPRequest is the HeaderRequestedWith value.
	XMLHTTPRequest = "XMLHttpRequest"
)

// ActionField is the reserved form field carrying the action id in an
// action POST. Component properties must not use this name.
const ActionField = "voltwire_action"

// SyncAction is the reserved action id the debouncer uses for property
// synchronization round trips. Sync requests have no source element, so no
// busy indicator is set for them.
const SyncAction = "voltwire_sync"

// LoadingClass is added to the document root element while an SPA
// navigation is in flight.
const LoadingClass = "voltwire-loading"

// ToastContainerID is the id of the element transient messages are appended
// to. The runtime creates the container on demand if the page lacks one.
const ToastContainerID = "voltwire-toasts"
