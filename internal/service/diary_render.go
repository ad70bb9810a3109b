package service

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

var (
	diaryMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	diarySanitizer = bluemonday.UGCPolicy()
)

// RenderDiaryContent 将日记 Markdown 渲染为经过清洗的 HTML
func RenderDiaryContent(content string) (template.HTML, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := diaryMarkdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render diary markdown: %w", err)
	}

	return template.HTML(diarySanitizer.SanitizeBytes(buf.Bytes())), nil
}
