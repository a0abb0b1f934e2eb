package report

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const htmlHead = `<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; line-height: 1.6; }
code { background: #f4f4f4; padding: 2px 6px; border-radius: 4px; }
table { border-collapse: collapse; width: 100%%; }
th, td { border: 1px solid #ddd; padding: 8px 12px; text-align: left; font-variant-numeric: tabular-nums; }
th { background: #f8f8f8; }
</style>
</head>
<body>
`

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Table),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithXHTML()),
)

// markdownToHTML markdown kaynağını tam bir HTML belgesine çevirir.
func markdownToHTML(buf *bytes.Buffer, title string, source []byte) error {
	fmt.Fprintf(buf, htmlHead, html.EscapeString(title))
	if err := markdown.Convert(source, buf); err != nil {
		return fmt.Errorf("markdown donusturulemedi: %w", err)
	}
	buf.WriteString("</body>\n</html>\n")
	return nil
}
