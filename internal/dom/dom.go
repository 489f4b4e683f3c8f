// Package dom is a minimal mutable document over golang.org/x/net/html.
//
// It serves as the output sink of the not-found page: the copy control
// writes its label into an Element, and tests read text back out. All
// access goes through the owning Document's lock so a reader never sees a
// label with its text and aria-label out of step.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document.
type Document struct {
	mu   sync.RWMutex
	root *html.Node
}

// Parse reads an HTML document or fragment. Fragments are wrapped in
// html/body as browsers do.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for an in-memory string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return &Element{doc: d, n: found}
}

// ByClass returns every element carrying class, in document order.
func (d *Document) ByClass(class string) []*Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && hasClass(n, class) {
			out = append(out, &Element{doc: d, n: n})
		}
		return true
	})
	return out
}

// Render writes the current state of the document.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return html.Render(w, d.root)
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Element is a handle on one element node.
type Element struct {
	doc *Document
	n   *html.Node
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.n.Data }

// Attr returns the value of key, or "".
func (e *Element) Attr(key string) string {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return attr(e.n, key)
}

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return hasClass(e.n, class)
}

// Text returns the concatenated text content, like DOM textContent.
func (e *Element) Text() string {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	var b strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

// Label returns the text content and aria-label together.
func (e *Element) Label() (text, aria string) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	var b strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String(), attr(e.n, "aria-label")
}

// SetLabel replaces the element's children with a single text node and sets
// aria-label, as one step.
func (e *Element) SetLabel(text, aria string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	setAttr(e.n, "aria-label", aria)
}

// IsButton reports whether the element is a <button>.
func (e *Element) IsButton() bool { return e.n.DataAtom == atom.Button }

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
