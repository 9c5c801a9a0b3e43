// Package devserver is a reference server for the VoltWire wire contract.
//
// It serves a small demo application (a counter component, a live search
// box, SPA-linked pages) and answers runtime action posts with the
// structured JSON responses the client engine consumes. Integration tests
// run the full runtime against it through httptest; the voltwire CLI serves
// it for manual poking.
//
// The server is stateless: like the production server it mirrors, component
// state travels with every request as flat form fields and comes back as a
// fragment plus a property patch.
package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/voltwire/voltwire"
)

// Server implements http.Handler for the demo application.
type Server struct {
	router chi.Router
	log    *slog.Logger
}

// New builds the demo server.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{log: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleHome)
	r.Post("/", s.handleAction)
	r.Get("/about", s.handleAbout)
	r.Post("/about", s.handleAction)
	r.Get("/legacy", s.handleLegacy)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if voltwire.IsSPARequest(r) {
		s.log.Debug("devserver: spa navigation", "path", r.URL.Path)
	}
	s.renderPage(w, r, "VoltWire Demo", homeContent(0, ""))
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "About — VoltWire Demo", aboutContent())
}

// handleLegacy redirects permanently; SPA navigations to it exercise the
// client's adopt-final-URL path.
func (s *Server) handleLegacy(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/about", http.StatusMovedPermanently)
}

// handleAction answers a runtime action post. Mutating requests without the
// runtime marker are rejected, keeping plain cross-origin form posts out.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if !voltwire.IsRuntimeRequest(r) {
		http.Error(w, "Forbidden: runtime request required", http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	action := r.PostFormValue(voltwire.ActionField)
	count, _ := strconv.Atoi(r.PostFormValue("count"))
	query := r.PostFormValue("query")

	resp := &voltwire.Response{Success: true}
	switch action {
	case "increment":
		count++
	case "decrement":
		count--
	case "reset":
		count = 0
		resp.Messages = append(resp.Messages, voltwire.Message{
			Text: "Counter reset", Type: voltwire.MessageInfo,
		})
	case "save":
		resp.Messages = append(resp.Messages, voltwire.Message{
			Text: "Saved!", Type: voltwire.MessageSuccess,
		})
	case "finish":
		resp.Redirect = "/about"
	case voltwire.SyncAction:
		// Property sync: nothing to do server-side in the demo; the echo
		// below confirms receipt.
	default:
		resp.Success = false
		resp.Errors = map[string][]string{
			voltwire.ActionField: {fmt.Sprintf("unknown action %q", action)},
		}
	}

	s.log.Debug("devserver: action",
		"action", action, "count", count, "query", query)

	if resp.Redirect == "" {
		resp.HTML = renderToString(counterView(count, query))
		resp.Properties = map[string]voltwire.Props{
			"counter": {"count": float64(count), "query": query},
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("devserver: response encode failed", "err", err)
	}
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, title string, content templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page(title, content).Render(r.Context(), w); err != nil {
		s.log.Error("devserver: page render failed", "err", err)
	}
}

// page is the shared layout: head, nav chrome, main landmark, toast
// container.
func page(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html><head><title>%s</title></head><body><nav>`, title); err != nil {
			return err
		}
		if err := navLink(ctx, w, "/", "Home", false); err != nil {
			return err
		}
		if err := navLink(ctx, w, "/about", "About", true); err != nil {
			return err
		}
		if err := navLink(ctx, w, "/legacy", "Legacy", false); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</nav><main>`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</main>`); err != nil {
			return err
		}
		if err := voltwire.ToastContainer().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

func navLink(ctx context.Context, w io.Writer, href, label string, prefetch bool) error {
	if _, err := fmt.Fprintf(w, `<a href="%s"`, href); err != nil {
		return err
	}
	if err := templ.RenderAttributes(ctx, w, voltwire.NavigateAttrs(prefetch)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, `>%s</a> `, label)
	return err
}

func homeContent(count int, query string) templ.Component {
	return counterView(count, query)
}

func aboutContent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<h1>About</h1><p>A progressive-enhancement demo backed by VoltWire.</p>`)
		return err
	})
}

// counterView renders the counter component markup. The same view answers
// both full page loads and action fragments.
func counterView(count int, query string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		props := voltwire.Props{"count": float64(count), "query": query, "expanded": false}

		if _, err := io.WriteString(w, `<div`); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, voltwire.ComponentAttrs("counter", props)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `><span class="count">%d</span>`, count); err != nil {
			return err
		}

		for _, b := range []struct{ action, label string }{
			{"increment", "+"}, {"decrement", "-"}, {"reset", "reset"},
			{"save", "save"}, {"finish", "finish"},
		} {
			if _, err := io.WriteString(w, `<button`); err != nil {
				return err
			}
			if err := templ.RenderAttributes(ctx, w, voltwire.ClickAttrs(b.action)); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `>%s</button>`, b.label); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<button`); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, voltwire.ToggleAttrs("expanded")); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `>details</button><input type="text" name="query"`); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, voltwire.ModelAttrs("query", true)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `></div>`)
		return err
	})
}

func renderToString(c templ.Component) string {
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		return ""
	}
	return buf.String()
}
