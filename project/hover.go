package project

import (
	"strings"

	"github.com/slimsag/godocmd"
)

// RenderHover converts a raw Go doc comment into Markdown suitable for a
// hoverResult's MarkedString contents.
func RenderHover(doc string) string {
	if doc == "" {
		return ""
	}

	var buf strings.Builder
	godocmd.ToMarkdown(&buf, doc, nil)
	return strings.TrimSpace(buf.String())
}
