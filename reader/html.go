package reader

import (
	"bytes"
	"encoding/base64"
	"image"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tgrayson/strata/model"
)

// spanStyle is the font state inherited down the DOM while parsing.
type spanStyle struct {
	fontName string
	fontSize float64
	bold     bool
}

// htmlParser accumulates blocks and images while traversing MuPDF's
// structured HTML output for one page.
type htmlParser struct {
	blocks []model.Block
	images []model.EmbeddedImage

	lines []model.Line
	spans []model.Span
}

// parsePageHTML parses one page of MuPDF HTML into blocks and embedded
// images. MuPDF emits each visual line as a <p> element whose <span>
// children carry font-family and font-size in their style attributes;
// bold text is wrapped in <b>. Images appear as <img> elements with
// base64 data URIs.
func parsePageHTML(r io.Reader) ([]model.Block, []model.EmbeddedImage, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	p := &htmlParser{}
	p.walk(doc, spanStyle{})
	p.endBlock()

	return p.blocks, p.images, nil
}

// walk recursively processes DOM nodes, threading the inherited font
// state down the tree.
func (p *htmlParser) walk(n *html.Node, st spanStyle) {
	switch n.Type {
	case html.TextNode:
		p.addText(n.Data, st)
		return

	case html.ElementNode:
		switch n.Data {
		case "script", "style", "head":
			return
		case "img":
			p.addImage(n)
			return
		case "br":
			p.endLine()
			return
		case "b", "strong":
			st.bold = true
		}
		st = applyStyle(st, attr(n, "style"))
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, st)
	}

	if n.Type == html.ElementNode && isBlockElement(n.Data) {
		p.endBlock()
	}
}

// addText appends a span to the current line. Whitespace-only text nodes
// (indentation between elements) are dropped.
func (p *htmlParser) addText(text string, st spanStyle) {
	text = norm.NFKC.String(text)
	if strings.TrimSpace(text) == "" {
		return
	}

	fontName := st.fontName
	if st.bold && !strings.Contains(strings.ToLower(fontName), "bold") {
		fontName += "-Bold"
	}

	p.spans = append(p.spans, model.Span{
		Text:     text,
		Size:     st.fontSize,
		FontName: fontName,
	})
}

// addImage records an <img> element as both an in-flow image block and an
// embedded image. The block marks the image's position in document order;
// the embedded image carries the decoded bytes for OCR.
func (p *htmlParser) addImage(n *html.Node) {
	p.endBlock()
	p.blocks = append(p.blocks, model.ImageBlock{})
	p.images = append(p.images, decodeDataURI(attr(n, "src")))
}

func (p *htmlParser) endLine() {
	if len(p.spans) == 0 {
		return
	}
	p.lines = append(p.lines, model.Line{Spans: p.spans})
	p.spans = nil
}

func (p *htmlParser) endBlock() {
	p.endLine()
	if len(p.lines) == 0 {
		return
	}
	p.blocks = append(p.blocks, model.TextBlock{Lines: p.lines})
	p.lines = nil
}

// isBlockElement reports whether closing the element ends the current
// text block.
func isBlockElement(name string) bool {
	switch name {
	case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "td", "th", "body":
		return true
	}
	return false
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// applyStyle folds a CSS style attribute into the inherited font state.
// Only font-family and font-size are of interest; everything else MuPDF
// emits (positioning, line-height) is ignored.
func applyStyle(st spanStyle, style string) spanStyle {
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "font-family":
			// Take the first family in the list, dropping generic
			// fallbacks like "serif".
			name, _, _ := strings.Cut(val, ",")
			name = strings.Trim(name, `"' `)
			if name != "" {
				st.fontName = name
			}
		case "font-size":
			if sz, ok := parsePoints(val); ok {
				st.fontSize = sz
			}
		case "font-weight":
			if val == "bold" || val == "bolder" {
				st.bold = true
			} else if w, err := strconv.Atoi(val); err == nil && w >= 600 {
				st.bold = true
			}
		}
	}
	return st
}

// parsePoints parses a CSS length like "12.5pt" or "14px" into a point
// value. Pixel lengths are converted at the CSS ratio of 0.75pt/px.
func parsePoints(val string) (float64, bool) {
	factor := 1.0
	switch {
	case strings.HasSuffix(val, "pt"):
		val = strings.TrimSuffix(val, "pt")
	case strings.HasSuffix(val, "px"):
		val = strings.TrimSuffix(val, "px")
		factor = 0.75
	}

	sz, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || sz <= 0 {
		return 0, false
	}
	return sz * factor, true
}

// decodeDataURI decodes a base64 image data URI into an EmbeddedImage.
// Anything that cannot be decoded into a recognized raster format yields
// an image with nil Data, which the engine reports as a failed extract.
func decodeDataURI(src string) model.EmbeddedImage {
	rest, ok := strings.CutPrefix(src, "data:")
	if !ok {
		return model.EmbeddedImage{}
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return model.EmbeddedImage{}
	}

	mime, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return model.EmbeddedImage{MIME: mime}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return model.EmbeddedImage{MIME: mime}
	}

	// Reject payloads no decoder recognizes so OCR never sees garbage.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return model.EmbeddedImage{MIME: mime}
	}

	return model.EmbeddedImage{Data: data, MIME: mime}
}
