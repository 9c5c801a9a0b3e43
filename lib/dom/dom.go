// Package dom provides a small document object model over golang.org/x/net/html.
//
// The VoltWire runtime needs just enough of a DOM to discover components,
// walk ancestor chains during event dispatch, and swap subtrees when the
// server returns replacement fragments. This package wraps *html.Node with
// the operations the runtime uses, so the engine itself never touches the
// parser's node structure directly.
//
// Elements are thin views over the underlying parse tree. Two Element values
// are the same element when they wrap the same node (see Same); the document
// owns node lifetime, Elements never do.
package dom

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoBody is returned when a parsed document has no body element.
// The html parser synthesizes one for any well-formed input, so this
// signals a truncated or non-HTML payload.
var ErrNoBody = errors.New("dom: document has no body")

// Document is a parsed HTML document.
type Document struct {
	node *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{node: node}, nil
}

// ParseString parses a full HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses an HTML fragment in a div context and returns its
// top-level elements. Text nodes between elements are kept in the tree but
// not returned; callers that need them should append the fragment instead.
func ParseFragment(s string) ([]*Element, error) {
	nodes, err := parseFragmentNodes(s)
	if err != nil {
		return nil, err
	}
	var els []*Element
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			els = append(els, &Element{node: n})
		}
	}
	return els, nil
}

func parseFragmentNodes(s string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(s), ctx)
}

// Root returns the document's root element (the html element).
func (d *Document) Root() *Element {
	for c := d.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return &Element{node: c}
		}
	}
	return nil
}

// Body returns the document body, or nil if the document has none.
func (d *Document) Body() *Element {
	return d.Find(func(e *Element) bool { return e.Tag() == "body" })
}

// Find returns the first element in document order matching the predicate,
// or nil.
func (d *Document) Find(match func(*Element) bool) *Element {
	root := d.Root()
	if root == nil {
		return nil
	}
	return root.Find(match)
}

// FindAll returns every element in document order matching the predicate.
func (d *Document) FindAll(match func(*Element) bool) []*Element {
	root := d.Root()
	if root == nil {
		return nil
	}
	return root.FindAll(match)
}

// Title returns the text of the document's title element, or "".
func (d *Document) Title() string {
	t := d.Find(func(e *Element) bool { return e.Tag() == "title" })
	if t == nil {
		return ""
	}
	return t.Text()
}

// SetTitle replaces the text of the title element, creating one under head
// if the document lacks it.
func (d *Document) SetTitle(title string) {
	t := d.Find(func(e *Element) bool { return e.Tag() == "title" })
	if t == nil {
		head := d.Find(func(e *Element) bool { return e.Tag() == "head" })
		if head == nil {
			return
		}
		node := &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		head.node.AppendChild(node)
		t = &Element{node: node}
	}
	t.SetText(title)
}

// HTML renders the whole document back to markup.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, d.node)
	return buf.String()
}

// Element is a view over a single element node in a Document.
type Element struct {
	node *html.Node
}

// Same reports whether two Elements wrap the same underlying node.
func (e *Element) Same(o *Element) bool {
	return o != nil && e.node == o.node
}

// Tag returns the lowercase tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Attr returns the value of the named attribute, or "".
func (e *Element) Attr(name string) string {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present, even when empty.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces the named attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// AddClass appends a class token unless already present.
func (e *Element) AddClass(class string) {
	if e.HasClass(class) {
		return
	}
	cur := e.Attr("class")
	if cur == "" {
		e.SetAttr("class", class)
		return
	}
	e.SetAttr("class", cur+" "+class)
}

// RemoveClass deletes a class token if present.
func (e *Element) RemoveClass(class string) {
	fields := strings.Fields(e.Attr("class"))
	out := fields[:0]
	for _, f := range fields {
		if f != class {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(out, " "))
}

// HasClass reports whether the class attribute contains the token.
func (e *Element) HasClass(class string) bool {
	for _, f := range strings.Fields(e.Attr("class")) {
		if f == class {
			return true
		}
	}
	return false
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return &Element{node: p}
		}
	}
	return nil
}

// Closest walks from the element itself up through its ancestors and returns
// the first element matching the predicate, or nil when none matches.
func (e *Element) Closest(match func(*Element) bool) *Element {
	for cur := e; cur != nil; cur = cur.Parent() {
		if match(cur) {
			return cur
		}
	}
	return nil
}

// Find returns the first descendant (including the element itself) matching
// the predicate, in document order.
func (e *Element) Find(match func(*Element) bool) *Element {
	var found *Element
	walk(e.node, func(n *html.Node) bool {
		el := &Element{node: n}
		if match(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindAll returns all descendants (including the element itself) matching
// the predicate, in document order.
func (e *Element) FindAll(match func(*Element) bool) []*Element {
	var out []*Element
	walk(e.node, func(n *html.Node) bool {
		el := &Element{node: n}
		if match(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// walk visits element nodes in document order. Returning false from visit
// stops the walk.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n.Type == html.ElementNode {
		if !visit(n) {
			return false
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// Text returns the concatenated text content of the subtree.
func (e *Element) Text() string {
	var sb strings.Builder
	var rec func(n *html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(e.node)
	return sb.String()
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(s string) {
	e.removeChildren()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// InnerHTML renders the element's children to markup.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML renders the element and its subtree to markup.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, e.node)
	return buf.String()
}

// SetInnerHTML replaces the element's children with the parsed fragment.
// The element itself, its tag and attributes, are untouched.
func (e *Element) SetInnerHTML(fragment string) error {
	nodes, err := parseFragmentNodes(fragment)
	if err != nil {
		return err
	}
	e.removeChildren()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// AppendHTML parses the fragment and appends it to the element's children.
func (e *Element) AppendHTML(fragment string) error {
	nodes, err := parseFragmentNodes(fragment)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// Append attaches another element as the last child. The element is detached
// from any previous parent first.
func (e *Element) Append(child *Element) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
}

// Remove detaches the element from its parent. A detached element is inert
// but its subtree stays intact.
func (e *Element) Remove() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

func (e *Element) removeChildren() {
	for e.node.FirstChild != nil {
		e.node.RemoveChild(e.node.FirstChild)
	}
}

// Value returns the control's current value: the value attribute, or for
// textareas the text content (a textarea has no value attribute). The runtime
// writes updated values back via SetValue, so binding and form serialization
// read the same state.
func (e *Element) Value() string {
	if e.Tag() == "textarea" {
		return e.Text()
	}
	return e.Attr("value")
}

// SetValue sets the control's current value, per the same rules as Value.
func (e *Element) SetValue(v string) {
	if e.Tag() == "textarea" {
		e.SetText(v)
		return
	}
	e.SetAttr("value", v)
}

// Checked reports whether the checked attribute is present.
func (e *Element) Checked() bool {
	return e.HasAttr("checked")
}

// SetChecked adds or removes the checked attribute.
func (e *Element) SetChecked(checked bool) {
	if checked {
		e.SetAttr("checked", "")
		return
	}
	e.RemoveAttr("checked")
}

// InputType returns the lowercase type attribute of an input element,
// defaulting to "text" the way browsers do.
func (e *Element) InputType() string {
	t := strings.ToLower(e.Attr("type"))
	if t == "" {
		return "text"
	}
	return t
}

// IsLink reports whether the element is an anchor with a non-empty href.
func (e *Element) IsLink() bool {
	return e.Tag() == "a" && e.Attr("href") != ""
}
