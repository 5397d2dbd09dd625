package utils

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			htmlrenderer.WithHardWraps(),
			htmlrenderer.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

func init() {
	// Allow images
	policy.AllowImages()
	// Force links to open in new tab
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown 将商品描述渲染为经过过滤的 HTML
func RenderMarkdown(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return html.EscapeString(source) // Fallback
	}

	return strings.TrimSpace(string(policy.SanitizeBytes(buf.Bytes())))
}

// StripTags 去除所有标签，用于名称等纯文本字段
func StripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
