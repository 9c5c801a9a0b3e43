package voltwire

import "testing"

func TestParsePropsFailsSoft(t *testing.T) {
	cases := []struct {
		name string
		blob string
		want int // expected key count
	}{
		{"valid", `{"count": 1, "label": "x"}`, 2},
		{"empty blob", ``, 0},
		{"malformed", `{"count": `, 0},
		{"non-object", `[1,2,3]`, 0},
		{"scalar", `42`, 0},
	}
	for _, tc := range cases {
		got := ParseProps(tc.blob)
		if got == nil {
			t.Errorf("%s: ParseProps returned nil, want non-nil", tc.name)
			continue
		}
		if len(got) != tc.want {
			t.Errorf("%s: len = %d, want %d", tc.name, len(got), tc.want)
		}
	}
}

func TestPropsAccessors(t *testing.T) {
	p := ParseProps(`{"count": 5, "label": "x", "done": true, "note": null}`)

	if n, ok := p.Number("count"); !ok || n != 5 {
		t.Errorf("Number(count) = %v, %v", n, ok)
	}
	if s, ok := p.String("label"); !ok || s != "x" {
		t.Errorf("String(label) = %v, %v", s, ok)
	}
	if b, ok := p.Bool("done"); !ok || !b {
		t.Errorf("Bool(done) = %v, %v", b, ok)
	}
	// Wrong-kind access fails the check instead of coercing.
	if _, ok := p.Bool("count"); ok {
		t.Error("Bool(count) should not be ok")
	}
	if _, ok := p.String("note"); ok {
		t.Error("String(null) should not be ok")
	}
}

func TestToggle(t *testing.T) {
	p := Props{"open": false}

	if got := p.Toggle("open"); !got {
		t.Error("first toggle should yield true")
	}
	if got := p.Toggle("open"); got {
		t.Error("second toggle should restore false")
	}

	// Missing property counts as false.
	if got := p.Toggle("fresh"); !got {
		t.Error("toggle of missing property should yield true")
	}
	// Non-boolean property counts as false.
	p["count"] = float64(3)
	if got := p.Toggle("count"); !got {
		t.Error("toggle of non-boolean should yield true")
	}
}

func TestMergeShallow(t *testing.T) {
	p := Props{"count": float64(1), "label": "x"}
	p.Merge(Props{"count": float64(5)})

	if n, _ := p.Number("count"); n != 5 {
		t.Errorf("count = %v, want 5", n)
	}
	if s, _ := p.String("label"); s != "x" {
		t.Errorf("label = %q, want untouched", s)
	}
}

func TestFormValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{true, "true"},
		{false, "false"},
		{float64(5), "5"},
		{float64(1.5), "1.5"},
		{map[string]any{"a": float64(1)}, `{"a":1}`},
	}
	for _, tc := range cases {
		if got := FormValue(tc.in); got != tc.want {
			t.Errorf("FormValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPropsJSONRoundTrip(t *testing.T) {
	p := Props{"count": float64(2), "label": "x"}
	back := ParseProps(p.JSON())
	if n, _ := back.Number("count"); n != 2 {
		t.Errorf("count lost in round trip: %v", back)
	}
	if s, _ := back.String("label"); s != "x" {
		t.Errorf("label lost in round trip: %v", back)
	}
}
