package notfound

import (
	"fmt"
	"html/template"
	"io"

	"github.com/homegarden/gardenpages/internal/copybutton"
)

// Element ids and classes the copy control binds to.
const (
	CodeBlockID     = "requested-url"
	CodeBlockClass  = "code-block"
	CopyButtonID    = "copy-btn"
	CopyButtonClass = "btn-copy"
	// CopyTargetAttr on a copy button names the id of the element whose text
	// it copies.
	CopyTargetAttr = "data-copy-for"
)

var pageTmpl = template.Must(template.New("notfound").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
</head>
<body>
<header>
<h1>{{.Heading}}</h1>
<div class="badge badge-error" role="status">Error</div>
</header>
<main id="main">
<p>{{.Message}}</p>
<code id="{{.CodeID}}" aria-label="Requested URL" class="{{.CodeClass}}" title="Requested URL">{{.Page.DisplayText}}</code>
<p>{{.Hint}}</p>
<div class="btn-group">
<a href="/" class="btn">Return Home</a>
<a href="/ui" class="btn btn-secondary">Read Documentation</a>
<button type="button" id="{{.ButtonID}}" class="btn btn-secondary {{.ButtonClass}}" data-copy-for="{{.CodeID}}" aria-label="{{.Labels.Idle.Aria}}">{{.Labels.Idle.Text}}</button>
</div>
</main>
</body>
</html>
`))

type pageData struct {
	Title, Description, Heading, Message, Hint string

	Page   Page
	Labels copybutton.Labels

	CodeID, CodeClass     string
	ButtonID, ButtonClass string
}

// Render writes the not-found page for p. The path is always emitted as
// escaped text, never as markup. Zero labels select the defaults.
func Render(w io.Writer, p Page, labels copybutton.Labels) error {
	if labels == (copybutton.Labels{}) {
		labels = copybutton.DefaultLabels()
	}
	data := pageData{
		Title:       Title,
		Description: Description,
		Heading:     Heading,
		Message:     Message,
		Hint:        Hint,
		Page:        p,
		Labels:      labels,
		CodeID:      CodeBlockID,
		CodeClass:   CodeBlockClass,
		ButtonID:    CopyButtonID,
		ButtonClass: CopyButtonClass,
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering not-found page: %w", err)
	}
	return nil
}
