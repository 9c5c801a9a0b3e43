package voltwire

import (
	"net/url"
	"sync"

	"github.com/voltwire/voltwire/lib/dom"
)

// HistoryEntry records a history mutation made through a TestHost.
type HistoryEntry struct {
	URL   string
	State []byte
}

// TestHost is an in-memory Host for unit tests. It tracks the current
// location and records every history mutation and full navigation, so tests
// can assert on exactly what the runtime asked the browser to do.
type TestHost struct {
	mu  sync.Mutex
	loc *url.URL

	Pushes   []HistoryEntry
	Replaces []HistoryEntry
	Assigns  []string

	// Confirms records every vw:confirm prompt text; ConfirmAnswer is the
	// canned reply, true by default.
	Confirms      []string
	ConfirmAnswer bool
}

// NewTestHost creates a host located at rawURL. Panics on an unparseable
// URL; test inputs are literals.
func NewTestHost(rawURL string) *TestHost {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic("voltwire: bad test host url: " + err.Error())
	}
	return &TestHost{loc: u, ConfirmAnswer: true}
}

// Location returns the current URL.
func (h *TestHost) Location() *url.URL {
	h.mu.Lock()
	defer h.mu.Unlock()
	u := *h.loc
	return &u
}

// Push records a pushed history entry and moves the location to it.
func (h *TestHost) Push(rawURL string, state []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Pushes = append(h.Pushes, HistoryEntry{URL: rawURL, State: state})
	h.setLocation(rawURL)
}

// Replace records a replaced history entry and moves the location to it.
func (h *TestHost) Replace(rawURL string, state []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Replaces = append(h.Replaces, HistoryEntry{URL: rawURL, State: state})
	h.setLocation(rawURL)
}

// Assign records a full browser navigation.
func (h *TestHost) Assign(rawURL string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Assigns = append(h.Assigns, rawURL)
	h.setLocation(rawURL)
}

// Confirm records the prompt and returns the canned answer.
func (h *TestHost) Confirm(message string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Confirms = append(h.Confirms, message)
	return h.ConfirmAnswer
}

// SetLocation moves the host without recording anything, e.g. to simulate
// the browser being on a popped history entry before HandlePopState.
func (h *TestHost) SetLocation(rawURL string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.setLocation(rawURL)
}

func (h *TestHost) setLocation(rawURL string) {
	if u, err := h.loc.Parse(rawURL); err == nil {
		h.loc = u
	}
}

// NewTestRuntime parses pageHTML and constructs a runtime against a
// TestHost located at rawURL. The document is returned through the runtime;
// locate event targets with FindByAttr and friends.
func NewTestRuntime(pageHTML, rawURL string, opts ...Option) (*Runtime, *TestHost, error) {
	doc, err := dom.ParseString(pageHTML)
	if err != nil {
		return nil, nil, err
	}
	host := NewTestHost(rawURL)
	rt := New(doc, host, opts...)
	return rt, host, nil
}

// FindByAttr returns the first element in the document carrying the
// attribute, optionally with a specific value (empty matches any).
func FindByAttr(doc *dom.Document, name, value string) *dom.Element {
	return doc.Find(func(e *dom.Element) bool {
		if !e.HasAttr(name) {
			return false
		}
		return value == "" || e.Attr(name) == value
	})
}
