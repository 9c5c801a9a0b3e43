package voltwire

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/voltwire/voltwire/lib/dom"
)

// Message levels. The server's messages framework tags map onto these.
const (
	MessageSuccess = "success"
	MessageError   = "error"
	MessageWarning = "warning"
	MessageInfo    = "info"
)

// DefaultMessageDuration is how long a transient message stays in the
// document before self-dismissing.
const DefaultMessageDuration = 3000 * time.Millisecond

// Message is a transient notification from an action response.
type Message struct {
	Text string `json:"text"`
	Type string `json:"type"`

	// Level is the server framework's numeric severity, when provided.
	Level int `json:"level,omitempty"`
}

// Toast returns a templ component rendering a single message as a toast
// element. dismissAfter is written to the data-voltwire-dismiss attribute so
// styling layers can animate against the same deadline the runtime uses.
func Toast(m Message, dismissAfter time.Duration) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		typ := m.Type
		if typ == "" {
			typ = MessageInfo
		}
		_, err := fmt.Fprintf(w,
			`<div class="voltwire-toast voltwire-toast-%s" data-voltwire-dismiss="%d">%s</div>`,
			html.EscapeString(typ), dismissAfter.Milliseconds(), html.EscapeString(m.Text))
		return err
	})
}

// ToastContainer returns a templ component for the container messages are
// appended to. Pages may include it in their layout; otherwise the runtime
// creates an equivalent element on demand at the end of the body.
func ToastContainer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div id="%s" class="voltwire-toast-container"></div>`, ToastContainerID)
		return err
	})
}

// showMessage renders a message into the toast container and schedules its
// removal. Called with rt.mu held.
func (rt *Runtime) showMessage(m Message) {
	container := rt.toastContainer()
	if container == nil {
		rt.log.Debug("voltwire: no body to attach messages to")
		return
	}

	var buf bytes.Buffer
	if err := Toast(m, rt.msgDuration).Render(context.Background(), &buf); err != nil {
		rt.log.Debug("voltwire: toast render failed", "err", err)
		return
	}
	els, err := dom.ParseFragment(buf.String())
	if err != nil || len(els) == 0 {
		return
	}
	toast := els[0]
	container.Append(toast)

	time.AfterFunc(rt.msgDuration, func() {
		rt.mu.Lock()
		defer rt.mu.Unlock()
		toast.Remove()
	})
}

// toastContainer finds the message container, creating it at the end of the
// body when the page does not provide one. Called with rt.mu held.
func (rt *Runtime) toastContainer() *dom.Element {
	container := rt.doc.Find(func(e *dom.Element) bool {
		return e.Attr("id") == ToastContainerID
	})
	if container != nil {
		return container
	}

	body := rt.doc.Body()
	if body == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := ToastContainer().Render(context.Background(), &buf); err != nil {
		return nil
	}
	if err := body.AppendHTML(buf.String()); err != nil {
		return nil
	}
	return rt.doc.Find(func(e *dom.Element) bool {
		return e.Attr("id") == ToastContainerID
	})
}
