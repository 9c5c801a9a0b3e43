package voltwire

import (
	"testing"

	"github.com/voltwire/voltwire/lib/dom"
)

const registryPage = `<!DOCTYPE html>
<html><head><title>t</title></head><body>
  <div vw:component="list" vw:props='{"filter":"all"}'>
    <div vw:component="item" vw:props='{"id":1}'></div>
  </div>
  <div vw:component="broken" vw:props='{"oops'></div>
  <div vw:component=""></div>
</body></html>`

func TestDiscover(t *testing.T) {
	doc, err := dom.ParseString(registryPage)
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry(nil)
	n := reg.Discover(doc.Root())

	// Nested components register too; the unnamed marker does not.
	if n != 3 {
		t.Errorf("Discover = %d, want 3", n)
	}

	list, ok := reg.Get("list")
	if !ok {
		t.Fatal("list not registered")
	}
	if f, _ := list.Props.String("filter"); f != "all" {
		t.Errorf("list filter = %q", f)
	}

	if _, ok := reg.Get("item"); !ok {
		t.Error("nested component not registered")
	}

	// Malformed blob: empty property set, discovery not aborted.
	broken, ok := reg.Get("broken")
	if !ok {
		t.Fatal("broken not registered")
	}
	if len(broken.Props) != 0 {
		t.Errorf("broken props = %v, want empty", broken.Props)
	}

	if _, ok := reg.Get("absent"); ok {
		t.Error("Get(absent) should report not found")
	}

	if reg.Len() != 3 {
		t.Errorf("Len = %d, want 3", reg.Len())
	}
	names := reg.Names()
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if len(names) != 3 || !seen["list"] || !seen["item"] || !seen["broken"] {
		t.Errorf("Names = %v", names)
	}
}

func TestDiscoverLastWins(t *testing.T) {
	doc, err := dom.ParseString(`<html><body>
		<div id="a" vw:component="dup" vw:props='{"v":1}'></div>
		<div id="b" vw:component="dup" vw:props='{"v":2}'></div>
	</body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry(nil)
	reg.Discover(doc.Root())

	c, ok := reg.Get("dup")
	if !ok {
		t.Fatal("dup not registered")
	}
	if v, _ := c.Props.Number("v"); v != 2 {
		t.Errorf("v = %v, want last discovery to win", v)
	}
	if c.Element().Attr("id") != "b" {
		t.Errorf("element = #%s, want #b", c.Element().Attr("id"))
	}
}

func TestRescanRefreshesSnapshot(t *testing.T) {
	doc, err := dom.ParseString(`<html><body>
		<div vw:component="counter" vw:props='{"count":1,"label":"x"}'></div>
		<div vw:component="other" vw:props='{"v":9}'></div>
	</body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry(nil)
	reg.Discover(doc.Root())

	el := doc.Find(func(e *dom.Element) bool { return e.Attr(AttrComponent) == "counter" })
	el.SetAttr(AttrProps, `{"count":7}`)
	if err := el.SetInnerHTML(`<span>7</span>`); err != nil {
		t.Fatal(err)
	}
	reg.Rescan(el)

	c, _ := reg.Get("counter")
	if n, _ := c.Props.Number("count"); n != 7 {
		t.Errorf("count = %v, want rescan to adopt new blob", n)
	}
	// Previous snapshot discarded, not merged.
	if _, ok := c.Props.String("label"); ok {
		t.Error("stale label survived rescan")
	}
	// Unrelated entries untouched.
	other, _ := reg.Get("other")
	if v, _ := other.Props.Number("v"); v != 9 {
		t.Error("unrelated entry disturbed by rescan")
	}
}

func TestUpdateAndMerge(t *testing.T) {
	doc, _ := dom.ParseString(`<html><body>
		<div vw:component="c" vw:props='{"count":1,"label":"x"}'></div>
	</body></html>`)
	reg := NewRegistry(nil)
	reg.Discover(doc.Root())

	if !reg.Merge("c", Props{"count": float64(5)}) {
		t.Fatal("Merge reported missing component")
	}
	snap, _ := reg.Snapshot("c")
	if n, _ := snap.Number("count"); n != 5 {
		t.Errorf("count = %v, want 5", n)
	}
	if s, _ := snap.String("label"); s != "x" {
		t.Errorf("label = %q, want untouched by shallow merge", s)
	}

	if reg.Merge("ghost", Props{"a": float64(1)}) {
		t.Error("Merge on absent component should report false")
	}

	// Snapshot is a copy: mutating it must not leak into the registry.
	snap["count"] = float64(99)
	again, _ := reg.Snapshot("c")
	if n, _ := again.Number("count"); n != 5 {
		t.Error("Snapshot leaked a live reference")
	}
}
