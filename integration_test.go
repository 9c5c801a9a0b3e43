package voltwire_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voltwire/voltwire"
	"github.com/voltwire/voltwire/lib/devserver"
)

// bootRuntime serves the demo application and boots a runtime on its home
// page, the way a browser would after the initial full page load.
func bootRuntime(t *testing.T) (*voltwire.Runtime, *voltwire.TestHost, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(devserver.New(nil))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	html, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}

	rt, host, err := voltwire.NewTestRuntime(string(html), srv.URL+"/")
	if err != nil {
		t.Fatal(err)
	}
	return rt, host, srv
}

func TestCounterRoundTrip(t *testing.T) {
	rt, _, _ := bootRuntime(t)

	if _, ok := rt.Registry().Get("counter"); !ok {
		t.Fatal("counter not discovered from the served page")
	}

	btn := voltwire.FindByAttr(rt.Document(), voltwire.AttrClick, "increment")
	if btn == nil {
		t.Fatal("increment button missing")
	}

	rt.HandleEvent(voltwire.NewEvent(voltwire.EventClick, btn))

	c, _ := rt.Registry().Get("counter")
	if n, _ := c.Props.Number("count"); n != 1 {
		t.Errorf("count = %v, want 1 after one increment", n)
	}
	if !strings.Contains(c.Element().InnerHTML(), `>1</span>`) {
		t.Errorf("fragment not swapped: %s", c.Element().InnerHTML())
	}
}

func TestRedirectActionLeavesThePage(t *testing.T) {
	rt, host, _ := bootRuntime(t)

	btn := voltwire.FindByAttr(rt.Document(), voltwire.AttrClick, "finish")
	rt.HandleEvent(voltwire.NewEvent(voltwire.EventClick, btn))

	if len(host.Assigns) != 1 || host.Assigns[0] != "/about" {
		t.Errorf("Assigns = %v, want a full navigation to /about", host.Assigns)
	}
}

func TestSPANavigationAcrossPages(t *testing.T) {
	rt, host, _ := bootRuntime(t)

	rt.Navigate(context.Background(), "/about")

	if got := rt.Document().Title(); !strings.HasPrefix(got, "About") {
		t.Errorf("title = %q", got)
	}
	if len(host.Pushes) != 1 || !strings.HasSuffix(host.Pushes[0].URL, "/about") {
		t.Errorf("Pushes = %v", host.Pushes)
	}
	if !strings.Contains(rt.Document().HTML(), "progressive-enhancement demo") {
		t.Error("about content not swapped in")
	}
}

func TestSPANavigationAdoptsLegacyRedirect(t *testing.T) {
	rt, host, _ := bootRuntime(t)

	rt.Navigate(context.Background(), "/legacy")

	if len(host.Replaces) != 1 || !strings.HasSuffix(host.Replaces[0].URL, "/about") {
		t.Errorf("Replaces = %v, want the final URL adopted", host.Replaces)
	}
	if len(host.Pushes) != 0 {
		t.Errorf("Pushes = %v, adopted navigation must not also push", host.Pushes)
	}
}
