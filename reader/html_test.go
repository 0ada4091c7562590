package reader

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/tgrayson/strata/model"
)

func TestParseTextBlocks(t *testing.T) {
	src := `<html><body>
<p style="top:71pt;left:108pt"><span style="font-family:Helvetica,sans-serif;font-size:18.0pt">Annual Report</span></p>
<p style="top:95pt;left:108pt"><span style="font-family:Times,serif;font-size:11.0pt">Revenue grew in the period.</span></p>
</body></html>`

	blocks, images, err := parsePageHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsePageHTML: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("got %d images, want 0", len(images))
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}

	tb, ok := blocks[0].(model.TextBlock)
	if !ok {
		t.Fatalf("block 0 is %T, want TextBlock", blocks[0])
	}
	if len(tb.Lines) != 1 || len(tb.Lines[0].Spans) != 1 {
		t.Fatalf("block 0 shape wrong: %+v", tb)
	}
	span := tb.Lines[0].Spans[0]
	if span.Text != "Annual Report" {
		t.Errorf("span text = %q", span.Text)
	}
	if span.Size != 18.0 {
		t.Errorf("span size = %v, want 18", span.Size)
	}
	if span.FontName != "Helvetica" {
		t.Errorf("span font = %q, want Helvetica", span.FontName)
	}

	tb2 := blocks[1].(model.TextBlock)
	if got := tb2.Lines[0].Text(); got != "Revenue grew in the period." {
		t.Errorf("block 1 text = %q", got)
	}
}

func TestParseBoldMarksFont(t *testing.T) {
	src := `<p><b><span style="font-family:Helvetica;font-size:12.0pt">Key Metrics</span></b></p>`

	blocks, _, err := parsePageHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsePageHTML: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}

	line := blocks[0].(model.TextBlock).Lines[0]
	if !line.IsBold() {
		t.Errorf("line should be bold: %+v", line)
	}
	if got := line.Spans[0].FontName; got != "Helvetica-Bold" {
		t.Errorf("font = %q, want Helvetica-Bold", got)
	}
}

func TestParseBoldFontNameNotDoubled(t *testing.T) {
	src := `<p><b><span style="font-family:Arial-BoldMT;font-size:12.0pt">Summary</span></b></p>`

	blocks, _, err := parsePageHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsePageHTML: %v", err)
	}
	if got := blocks[0].(model.TextBlock).Lines[0].Spans[0].FontName; got != "Arial-BoldMT" {
		t.Errorf("font = %q, want Arial-BoldMT unchanged", got)
	}
}

func TestParseBreakSplitsLines(t *testing.T) {
	src := `<p><span style="font-size:10.0pt">first line</span><br/><span style="font-size:10.0pt">second line</span></p>`

	blocks, _, err := parsePageHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsePageHTML: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}

	tb := blocks[0].(model.TextBlock)
	if len(tb.Lines) != 2 {
		t.Fatalf("got %d lines, want 2: %+v", len(tb.Lines), tb)
	}
	if tb.Lines[0].Text() != "first line" || tb.Lines[1].Text() != "second line" {
		t.Errorf("lines = %q, %q", tb.Lines[0].Text(), tb.Lines[1].Text())
	}
}

func TestParseNormalizesLigatures(t *testing.T) {
	// \ufb01 and \ufb03 are the fi and ffi ligatures common in PDF fonts.
	src := "<p><span style=\"font-size:10.0pt\">pro\ufb01t and e\ufb03ciency</span></p>"

	blocks, _, err := parsePageHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsePageHTML: %v", err)
	}

	got := blocks[0].(model.TextBlock).Lines[0].Text()
	if got != "profit and efficiency" {
		t.Errorf("ligatures not folded: %q", got)
	}
}

func TestParseImage(t *testing.T) {
	src := fmt.Sprintf(`<p><img src="data:image/png;base64,%s"/></p>`, tinyPNGBase64(t))

	blocks, images, err := parsePageHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsePageHTML: %v", err)
	}

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1: %+v", len(blocks), blocks)
	}
	if _, ok := blocks[0].(model.ImageBlock); !ok {
		t.Errorf("block 0 is %T, want ImageBlock", blocks[0])
	}

	if len(images) != 1 {
		t.Fatalf("got %d images, want 1", len(images))
	}
	if images[0].MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", images[0].MIME)
	}
	if images[0].Data == nil {
		t.Error("image data should be decoded")
	}
}

func TestParseImageBadPayload(t *testing.T) {
	src := `<p><img src="data:image/png;base64,bm90IGFuIGltYWdl"/></p>`

	_, images, err := parsePageHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsePageHTML: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("got %d images, want 1", len(images))
	}
	if images[0].Data != nil {
		t.Error("undecodable payload should yield nil data")
	}
	if images[0].MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", images[0].MIME)
	}
}

func TestParseEmptyPage(t *testing.T) {
	blocks, images, err := parsePageHTML(strings.NewReader(`<html><body>
	</body></html>`))
	if err != nil {
		t.Fatalf("parsePageHTML: %v", err)
	}
	if len(blocks) != 0 || len(images) != 0 {
		t.Errorf("empty page yielded %d blocks, %d images", len(blocks), len(images))
	}
}

func TestApplyStyle(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  spanStyle
	}{
		{
			name:  "family and size",
			style: "font-family:Georgia,serif;font-size:14.5pt",
			want:  spanStyle{fontName: "Georgia", fontSize: 14.5},
		},
		{
			name:  "pixel size converts to points",
			style: "font-size:16px",
			want:  spanStyle{fontSize: 12},
		},
		{
			name:  "numeric bold weight",
			style: "font-weight:700",
			want:  spanStyle{bold: true},
		},
		{
			name:  "quoted family name",
			style: `font-family:"Courier New",monospace`,
			want:  spanStyle{fontName: "Courier New"},
		},
		{
			name:  "irrelevant declarations ignored",
			style: "top:71pt;left:108pt;line-height:1.2",
			want:  spanStyle{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyStyle(spanStyle{}, tt.style); got != tt.want {
				t.Errorf("applyStyle(%q) = %+v, want %+v", tt.style, got, tt.want)
			}
		})
	}
}

// tinyPNGBase64 encodes a 1x1 PNG for data URI fixtures.
func tinyPNGBase64(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encoding fixture png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
