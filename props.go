package voltwire

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"
)

// Props is a component's property mapping. Values are the JSON-compatible
// kinds: string, float64, bool, nil, []any and map[string]any. Coercion
// rules (checkbox-to-boolean, form string encoding) are explicit, checked
// conversions via the typed accessors below, never implicit.
type Props map[string]any

// ParseProps parses a vw:props JSON blob. Parsing fails soft: a malformed or
// non-object blob yields an empty property set, never an error, so a single
// bad component cannot abort document discovery.
func ParseProps(blob string) Props {
	if blob == "" || !gjson.Valid(blob) {
		return Props{}
	}
	parsed := gjson.Parse(blob)
	if !parsed.IsObject() {
		return Props{}
	}
	m, ok := parsed.Value().(map[string]any)
	if !ok {
		return Props{}
	}
	return Props(m)
}

// Clone returns a shallow copy. Nested structures are shared; the runtime
// only ever replaces top-level keys.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge copies every key of patch into p, field by field. Keys absent from
// the patch are untouched.
func (p Props) Merge(patch Props) {
	for k, v := range patch {
		p[k] = v
	}
}

// Bool returns the named property as a boolean. The second result reports
// whether the property exists and is a boolean.
func (p Props) Bool(name string) (bool, bool) {
	v, ok := p[name].(bool)
	return v, ok
}

// String returns the named property as a string.
func (p Props) String(name string) (string, bool) {
	v, ok := p[name].(string)
	return v, ok
}

// Number returns the named property as a float64 (the JSON number kind).
func (p Props) Number(name string) (float64, bool) {
	v, ok := p[name].(float64)
	return v, ok
}

// Toggle flips the named boolean property in place and returns the new
// value. A missing or non-boolean property counts as false, so the first
// toggle always yields true.
func (p Props) Toggle(name string) bool {
	cur, _ := p.Bool(name)
	p[name] = !cur
	return !cur
}

// JSON renders the property mapping back to a vw:props blob.
func (p Props) JSON() string {
	data, err := json.Marshal(map[string]any(p))
	if err != nil {
		return "{}"
	}
	return string(data)
}

// FormValue string-coerces a property value for flat form encoding.
// Scalars encode the way a browser form would; nested structures fall back
// to their JSON text.
func FormValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
