package notfound

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/homegarden/gardenpages/internal/copybutton"
	"github.com/homegarden/gardenpages/internal/dom"
)

// View is a rendered not-found page with live copy controls, one per
// rendered code block.
type View struct {
	doc         *dom.Document
	affordances []*copybutton.Affordance
}

// Open renders p, parses the result and attaches the copy controls. cfg is
// shared by every control; its Labels also drive the rendered markup.
func Open(p Page, cfg copybutton.Config) (*View, error) {
	var buf bytes.Buffer
	if err := Render(&buf, p, cfg.Labels); err != nil {
		return nil, err
	}
	doc, err := dom.Parse(&buf)
	if err != nil {
		return nil, err
	}
	return Attach(doc, cfg)
}

// Attach binds a copy control to every element of class btn-copy in doc.
// Each button names the element it copies through data-copy-for.
func Attach(doc *dom.Document, cfg copybutton.Config) (*View, error) {
	v := &View{doc: doc}
	for _, btn := range doc.ByClass(CopyButtonClass) {
		target := btn.Attr(CopyTargetAttr)
		if target == "" {
			v.Close()
			return nil, fmt.Errorf("copy button %q has no %s", btn.Attr("id"), CopyTargetAttr)
		}
		src := doc.ByID(target)
		if src == nil {
			v.Close()
			return nil, fmt.Errorf("copy button %q: target %q not found", btn.Attr("id"), target)
		}
		v.affordances = append(v.affordances, copybutton.New(src, btn, cfg))
	}
	return v, nil
}

// Document returns the live document the controls write into.
func (v *View) Document() *dom.Document { return v.doc }

// Affordances returns the attached controls in document order.
func (v *View) Affordances() []*copybutton.Affordance { return v.affordances }

// CopyButton returns the first copy control, or nil when the page has none.
func (v *View) CopyButton() *copybutton.Affordance {
	if len(v.affordances) == 0 {
		return nil
	}
	return v.affordances[0]
}

// Close tears down every control. Pending reverts are cancelled.
func (v *View) Close() error {
	var errs []error
	for _, a := range v.affordances {
		if err := a.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
