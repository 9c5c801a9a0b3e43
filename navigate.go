package voltwire

import (
	"context"
	"net/url"

	"github.com/voltwire/voltwire/lib/dom"
	"github.com/voltwire/voltwire/lib/encoding"
)

// navState tracks the navigator's state machine: Idle -> Loading -> Idle,
// with failure escalating to a full browser navigation instead of leaving
// partial SPA state behind.
type navState int

const (
	navIdle navState = iota
	navLoading
)

// Navigate performs an SPA navigation to target (absolute or relative to
// the current location): fetch the document, adopt the final URL when the
// server redirected, swap the main landmark (or the whole body when no
// landmark exists), push history, and rediscover components. Any fetch or
// parse failure falls back to a full browser navigation to the originally
// requested URL.
func (rt *Runtime) Navigate(ctx context.Context, target string) {
	rt.navigate(ctx, target, true)
}

// HandlePopState reacts to back/forward browser navigation by re-fetching
// the current URL through the same SPA path, without pushing a new history
// entry.
func (rt *Runtime) HandlePopState(ctx context.Context) {
	rt.navigate(ctx, rt.host.Location().String(), false)
}

func (rt *Runtime) navigate(ctx context.Context, target string, push bool) {
	abs := rt.absoluteURL(target)

	rt.mu.Lock()
	rt.nav = navLoading
	if root := rt.doc.Root(); root != nil {
		root.AddClass(LoadingClass)
	}
	rt.mu.Unlock()

	page, err := rt.client.Page(ctx, abs)
	if err != nil {
		rt.navigateFallback(abs, err)
		return
	}

	next, err := dom.ParseString(page.Body)
	if err != nil {
		rt.navigateFallback(abs, err)
		return
	}
	if next.Body() == nil {
		rt.navigateFallback(abs, dom.ErrNoBody)
		return
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	defer rt.settleNavigation()

	adopted := false
	if page.Redirected {
		// Adopt the true destination before the swap so the address bar
		// never shows a URL the content no longer belongs to.
		rt.host.Replace(page.URL, rt.historyState(page.URL, next.Title()))
		adopted = true
	}

	if t := next.Title(); t != "" {
		rt.doc.SetTitle(t)
	}

	rt.swapContent(next)

	if push && !adopted {
		rt.host.Push(page.URL, rt.historyState(page.URL, rt.doc.Title()))
	}

	if root := rt.doc.Root(); root != nil {
		rt.registry.Discover(root)
	}
}

// swapContent replaces the primary content region, preserving everything
// outside it. The main landmark is preferred; when either document lacks
// one, the whole body is swapped. Called with rt.mu held.
func (rt *Runtime) swapContent(next *dom.Document) {
	isMain := func(e *dom.Element) bool { return e.Tag() == "main" }
	liveMain := rt.doc.Find(isMain)
	nextMain := next.Find(isMain)

	if liveMain != nil && nextMain != nil {
		if err := liveMain.SetInnerHTML(nextMain.InnerHTML()); err == nil {
			return
		}
	}
	if body := rt.doc.Body(); body != nil {
		_ = body.SetInnerHTML(next.Body().InnerHTML())
	}
}

// navigateFallback abandons the enhancement and hands the originally
// requested URL to the browser for a full navigation. No partial SPA state
// is left behind.
func (rt *Runtime) navigateFallback(target string, err error) {
	rt.log.Warn("voltwire: spa navigation failed, falling back",
		"url", target, "err", err)

	rt.mu.Lock()
	rt.settleNavigation()
	rt.mu.Unlock()

	rt.host.Assign(target)
}

// settleNavigation returns the navigator to idle. Called with rt.mu held.
func (rt *Runtime) settleNavigation() {
	rt.nav = navIdle
	if root := rt.doc.Root(); root != nil {
		root.RemoveClass(LoadingClass)
	}
}

// HandlePointerEnter drives hover prefetch: the first pointer-enter over a
// link carrying the prefetch marker issues a fire-and-forget GET. The
// reference behavior arms this exactly once per page lifetime; later hovers
// are ignored. Kept as-is rather than silently fixed.
func (rt *Runtime) HandlePointerEnter(ctx context.Context, target *dom.Element) {
	if target == nil {
		return
	}
	link := target.Closest(func(e *dom.Element) bool {
		return e.IsLink() && e.HasAttr(AttrPrefetch)
	})
	if link == nil {
		return
	}

	rt.mu.Lock()
	if rt.prefetched {
		rt.mu.Unlock()
		return
	}
	rt.prefetched = true
	rt.mu.Unlock()

	rt.client.Prefetch(ctx, rt.absoluteURL(link.Attr("href")))
}

// absoluteURL resolves target against the current location.
func (rt *Runtime) absoluteURL(target string) string {
	base := rt.host.Location()
	if base == nil {
		return target
	}
	ref, err := url.Parse(target)
	if err != nil {
		return target
	}
	return base.ResolveReference(ref).String()
}

// historyState encodes the signed snapshot stored in a history entry.
func (rt *Runtime) historyState(pageURL, title string) []byte {
	state, err := rt.codec.Encode(encoding.NewSnapshot(pageURL, title))
	if err != nil {
		rt.log.Debug("voltwire: snapshot encode failed", "err", err)
		return nil
	}
	return []byte(state)
}
