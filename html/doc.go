/*
Package html renders TurboMD document trees as HTML.

The renderer builds a golang.org/x/net/html node tree and serializes it with
html.Render, so all text and attribute values are escaped on the way out.
Include references must have been substituted before rendering; an
unresolved one fails the whole document.
*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tmd.html'.
func tracer() tracing.Trace {
	return tracing.Select("tmd.html")
}
