package view

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// RenderMarkdown converts markdown (raw HTML allowed) into sanitized HTML.
// Script tags, event handlers and javascript: links never survive.
func RenderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

// MustRenderMarkdown is RenderMarkdown for templates; failures render as escaped text.
func MustRenderMarkdown(content string) template.HTML {
	rendered, err := RenderMarkdown(content)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return rendered
}
