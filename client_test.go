package voltwire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestActionErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/boom":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/garbage":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success": tru`))
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success": true}`))
		}
	}))
	defer srv.Close()

	c := NewClient(nil, nil)
	form := url.Values{ActionField: {"ping"}}

	if _, err := c.Action(context.Background(), srv.URL+"/ok", form); err != nil {
		t.Errorf("ok: err = %v", err)
	}

	_, err := c.Action(context.Background(), srv.URL+"/boom", form)
	if !IsTransportError(err) {
		t.Errorf("server error: err = %v, want transport classification", err)
	}

	_, err = c.Action(context.Background(), srv.URL+"/garbage", form)
	if !errors.Is(err, ErrBadResponse) {
		t.Errorf("garbage body: err = %v, want ErrBadResponse", err)
	}
}

func TestPageErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	c := NewClient(nil, nil)
	_, err := c.Page(context.Background(), srv.URL+"/")
	if !errors.Is(err, ErrNavigationFailed) {
		t.Errorf("err = %v, want ErrNavigationFailed", err)
	}
}

func TestPageReportsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>new</body></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(nil, nil)

	page, err := c.Page(context.Background(), srv.URL+"/old")
	if err != nil {
		t.Fatal(err)
	}
	if !page.Redirected || page.URL != srv.URL+"/new" {
		t.Errorf("page = %+v, want redirect to /new reported", page)
	}

	direct, err := c.Page(context.Background(), srv.URL+"/new")
	if err != nil {
		t.Fatal(err)
	}
	if direct.Redirected {
		t.Error("direct fetch reported as redirected")
	}
}
