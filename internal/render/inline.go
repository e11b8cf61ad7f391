package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// inlineRenderer converts a single body line of Markdown into inline HTML.
type inlineRenderer struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

func newInlineRenderer(sanitize bool) *inlineRenderer {
	r := &inlineRenderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
	if sanitize {
		r.policy = bluemonday.UGCPolicy()
	}
	return r
}

// Render returns the inline HTML for line without the surrounding paragraph.
func (r *inlineRenderer) Render(line string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(line), &buf); err != nil {
		return "", fmt.Errorf("render: inline markdown: %w", err)
	}
	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	if r.policy != nil {
		out = r.policy.Sanitize(out)
	} else {
		out = strings.TrimSpace(out)
	}
	return template.HTML(out), nil
}
