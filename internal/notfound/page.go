// Package notfound describes the 404 response of the site: the requested
// path, the text shown for it, and the page fragment carrying the copy
// control.
package notfound

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fixed page copy.
const (
	Title       = "Page Not Found - HomeGarden API"
	Description = "The requested page could not be found."
	Heading     = "🌱 404 Not Found"
	Message     = "Oops! The page you are looking for does not exist."
	Hint        = "Please check the URL or go back to the homepage."
)

// Page is the data of one not-found response. It is a value; nothing in it
// changes after New.
type Page struct {
	// RequestedPath is the path exactly as received. Absent is "".
	RequestedPath string
	// DisplayText is RequestedPath made safe to lay out as literal text.
	DisplayText string
}

// New builds the Page for path. Any string is accepted.
func New(path string) Page {
	return Page{
		RequestedPath: path,
		DisplayText:   DisplayText(path),
	}
}

// FromURL builds the Page for the path component of u. A nil URL yields the
// empty path.
func FromURL(u *url.URL) Page {
	if u == nil {
		return New("")
	}
	return New(u.Path)
}

// DisplayText drops control and bidi-control characters, which would break
// the layout of the code block, and replaces invalid UTF-8 with U+FFFD.
// Everything else passes through verbatim; escaping is the renderer's job.
func DisplayText(path string) string {
	if !utf8.ValidString(path) {
		path = strings.ToValidUTF8(path, "\uFFFD")
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || unicode.Is(unicode.Bidi_Control, r) {
			return -1
		}
		return r
	}, path)
}

// WantsHTML reports whether a client sending this Accept header should get
// the HTML page rather than the JSON error body.
func WantsHTML(accept string) bool {
	return strings.Contains(accept, "text/html")
}

// APIError is the JSON body returned to non-browser clients.
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIError returns the JSON error body for a request with the given method.
func (p Page) APIError(method string) APIError {
	return APIError{
		Success: false,
		Error:   "Not Found",
		Message: fmt.Sprintf("Cannot find %s %s", method, p.RequestedPath),
	}
}
