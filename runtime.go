package voltwire

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voltwire/voltwire/lib/dom"
	"github.com/voltwire/voltwire/lib/encoding"
)

// Host is the browser environment the runtime runs inside: the current
// location, history manipulation, and full-page navigation. A wasm build
// backs this with the real window object; tests use the in-memory host from
// testing.go.
type Host interface {
	// Location returns the current URL. It is the single source of truth
	// for page identity; the runtime keeps it synchronized with history.
	Location() *url.URL

	// Push adds a history entry for the URL with an opaque state blob.
	Push(url string, state []byte)

	// Replace rewrites the current history entry.
	Replace(url string, state []byte)

	// Assign performs a full browser navigation, abandoning this runtime.
	// Used for server redirects and SPA fallback.
	Assign(url string)

	// Confirm presents a blocking yes/no prompt for vw:confirm guards and
	// reports the user's answer.
	Confirm(message string) bool
}

// Runtime is the per-page engine instance: the explicit context object
// holding the registry, transport, and host. It is constructed once at page
// startup, never torn down during the page's life, and replaced wholesale on
// full navigation. Construct isolated instances freely in tests.
//
// The mutex is the Go rendering of the browser's single-threaded event loop:
// DOM mutation and property updates happen under it and are atomic relative
// to each other, while network requests run outside it — the only suspension
// points, where other work may interleave.
type Runtime struct {
	mu       sync.Mutex
	doc      *dom.Document
	registry *Registry
	client   *Client
	host     Host
	log      *slog.Logger
	debounce *debouncer
	codec    *encoding.Codec

	msgDuration time.Duration
	tokens      map[string]uuid.UUID
	nav         navState
	prefetched  bool

	onLocalChange func(component, prop string)

	// construction-only knobs
	httpClient    *http.Client
	timeout       time.Duration
	debounceDelay time.Duration
	snapshotKey   []byte
}

// Option configures a Runtime at construction.
type Option func(*Runtime)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) { rt.log = logger }
}

// WithHTTPClient supplies the underlying HTTP client, replacing the default
// timeout-bounded one.
func WithHTTPClient(hc *http.Client) Option {
	return func(rt *Runtime) { rt.httpClient = hc }
}

// WithRequestTimeout overrides the default request timeout. Ignored when
// WithHTTPClient is also given.
func WithRequestTimeout(d time.Duration) Option {
	return func(rt *Runtime) { rt.timeout = d }
}

// WithDebounceDelay overrides the live-binding sync delay.
func WithDebounceDelay(d time.Duration) Option {
	return func(rt *Runtime) { rt.debounceDelay = d }
}

// WithMessageDuration overrides how long transient messages stay visible.
func WithMessageDuration(d time.Duration) Option {
	return func(rt *Runtime) { rt.msgDuration = d }
}

// WithSnapshotKey sets the key signing history snapshots. Defaults to a
// random per-runtime key; snapshots only need to verify within one page
// lifetime.
func WithSnapshotKey(key []byte) Option {
	return func(rt *Runtime) { rt.snapshotKey = key }
}

// WithLocalChangeHook registers a callback fired after every local property
// mutation (toggles and bindings). Hosts use it as the re-render signal.
func WithLocalChangeHook(fn func(component, prop string)) Option {
	return func(rt *Runtime) { rt.onLocalChange = fn }
}

// New constructs a runtime for the document and immediately discovers its
// components.
func New(doc *dom.Document, host Host, opts ...Option) *Runtime {
	rt := &Runtime{
		doc:         doc,
		host:        host,
		log:         slog.Default(),
		msgDuration: DefaultMessageDuration,
		tokens:      make(map[string]uuid.UUID),
		timeout:     DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.log == nil {
		rt.log = slog.Default()
	}

	hc := rt.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: rt.timeout}
	}
	rt.client = NewClient(hc, rt.log)

	if rt.snapshotKey == nil {
		rt.snapshotKey = make([]byte, 32)
		_, _ = rand.Read(rt.snapshotKey)
	}
	rt.codec = encoding.NewCodec(rt.snapshotKey)

	rt.registry = NewRegistry(rt.log)
	rt.debounce = newDebouncer(rt.debounceDelay)

	if root := doc.Root(); root != nil {
		rt.registry.Discover(root)
	}
	return rt
}

// Document returns the live document the runtime operates on.
func (rt *Runtime) Document() *dom.Document {
	return rt.doc
}

// Registry returns the component registry.
func (rt *Runtime) Registry() *Registry {
	return rt.registry
}
