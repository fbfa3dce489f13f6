package vision

import (
	"encoding/json"
	"errors"
	"testing"
)

const boxJSON = `{"vertices":[{"x":10,"y":10},{"x":40,"y":10},{"x":40,"y":30},{"x":10,"y":30}]}`

func TestDecodeFullTextAnnotation(t *testing.T) {
	input := `{
		"text": "Hi yo\n",
		"pages": [{
			"width": 800,
			"height": 600,
			"blocks": [{
				"blockType": "TEXT",
				"confidence": 0.97,
				"boundingBox": ` + boxJSON + `,
				"paragraphs": [{
					"confidence": 0.96,
					"boundingBox": ` + boxJSON + `,
					"words": [
						{"confidence": 0.9, "boundingBox": ` + boxJSON + `, "symbols": [
							{"confidence": 0.9, "boundingBox": ` + boxJSON + `, "text": "H"},
							{"confidence": 0.9, "boundingBox": ` + boxJSON + `, "text": "i"}
						]},
						{"confidence": 0.95, "boundingBox": ` + boxJSON + `, "symbols": [
							{"confidence": 0.95, "boundingBox": ` + boxJSON + `, "text": "y"},
							{"confidence": 0.95, "boundingBox": ` + boxJSON + `, "text": "o"}
						]}
					]
				}]
			}]
		}]
	}`

	var fta FullTextAnnotation
	if err := json.Unmarshal([]byte(input), &fta); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if fta.Text != "Hi yo\n" {
		t.Errorf("Text = %q", fta.Text)
	}
	if len(fta.Pages) != 1 || len(fta.Pages[0].Blocks) != 1 || len(fta.Pages[0].Blocks[0].Paragraphs) != 1 {
		t.Fatalf("unexpected tree shape: %+v", fta)
	}
	page := fta.Pages[0]
	if page.Width != 800 || page.Height != 600 {
		t.Errorf("page size = %dx%d, want 800x600", page.Width, page.Height)
	}
	block := page.Blocks[0]
	if block.BlockType != BlockTypeText || block.Confidence != 0.97 {
		t.Errorf("block = %s/%v", block.BlockType, block.Confidence)
	}
	par := block.Paragraphs[0]
	if len(par.Words) != 2 {
		t.Fatalf("len(Words) = %d, want 2", len(par.Words))
	}
	if par.Words[0].Confidence != 0.9 || par.Words[1].Confidence != 0.95 {
		t.Errorf("word confidences = %v, %v", par.Words[0].Confidence, par.Words[1].Confidence)
	}
	if got := par.Text(); got != "Hi yo" {
		t.Errorf("Paragraph.Text() = %q, want %q", got, "Hi yo")
	}
	if got := par.Words[1].Symbols[1].Text; got != "o" {
		t.Errorf("symbol text = %q", got)
	}
}

func TestDecodeFullTextAnnotationMissingFields(t *testing.T) {
	symbol := `{"confidence":1,"boundingBox":` + boxJSON + `,"text":"a"}`
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"no pages", `{"text":"x"}`, "fullTextAnnotation.pages"},
		{"null pages", `{"pages":null}`, "fullTextAnnotation.pages"},
		{"page without blocks", `{"pages":[{"width":1}]}`, "page.blocks"},
		{"block without type", `{"pages":[{"blocks":[{"confidence":1,"boundingBox":` + boxJSON + `,"paragraphs":[]}]}]}`, "block.blockType"},
		{"block without confidence", `{"pages":[{"blocks":[{"blockType":"TEXT","boundingBox":` + boxJSON + `,"paragraphs":[]}]}]}`, "block.confidence"},
		{"block without box", `{"pages":[{"blocks":[{"blockType":"TEXT","confidence":1,"paragraphs":[]}]}]}`, "block.boundingBox"},
		{"block without paragraphs", `{"pages":[{"blocks":[{"blockType":"TEXT","confidence":1,"boundingBox":` + boxJSON + `}]}]}`, "block.paragraphs"},
		{"null block", `{"pages":[{"blocks":[null]}]}`, "block.boundingBox"},
		{"paragraph without words", `{"pages":[{"blocks":[{"blockType":"TEXT","confidence":1,"boundingBox":` + boxJSON + `,"paragraphs":[{"confidence":1,"boundingBox":` + boxJSON + `}]}]}]}`, "paragraph.words"},
		{"word without symbols", `{"pages":[{"blocks":[{"blockType":"TEXT","confidence":1,"boundingBox":` + boxJSON + `,"paragraphs":[{"confidence":1,"boundingBox":` + boxJSON + `,"words":[{"confidence":1,"boundingBox":` + boxJSON + `}]}]}]}]}`, "word.symbols"},
		{"symbol without text", `{"pages":[{"blocks":[{"blockType":"TEXT","confidence":1,"boundingBox":` + boxJSON + `,"paragraphs":[{"confidence":1,"boundingBox":` + boxJSON + `,"words":[{"confidence":1,"boundingBox":` + boxJSON + `,"symbols":[{"confidence":1,"boundingBox":` + boxJSON + `}]}]}]}]}]}`, "symbol.text"},
		{"box without vertices", `{"pages":[{"blocks":[{"blockType":"TEXT","confidence":1,"boundingBox":{},"paragraphs":[]}]}]}`, "boundingBox.vertices"},
		{"valid symbol, word missing confidence", `{"pages":[{"blocks":[{"blockType":"TEXT","confidence":1,"boundingBox":` + boxJSON + `,"paragraphs":[{"confidence":1,"boundingBox":` + boxJSON + `,"words":[{"boundingBox":` + boxJSON + `,"symbols":[` + symbol + `]}]}]}]}]}`, "word.confidence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fta FullTextAnnotation
			err := json.Unmarshal([]byte(tt.input), &fta)
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("Unmarshal() error = %v, want *SchemaError", err)
			}
			if se.Path != tt.wantPath {
				t.Errorf("SchemaError.Path = %q, want %q", se.Path, tt.wantPath)
			}
		})
	}
}

func TestOptionalVertexCoordinates(t *testing.T) {
	var b BoundingBox
	if err := json.Unmarshal([]byte(`{"vertices":[{},{"x":40},{"x":40,"y":30},{"y":30}]}`), &b); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if b.Vertices[0].X != nil || b.Vertices[0].Y != nil {
		t.Errorf("absent coordinates decoded as present: %+v", b.Vertices[0])
	}
	if b.Vertices[1].Y != nil {
		t.Errorf("absent y decoded as present")
	}

	q, err := b.Quad()
	if err != nil {
		t.Fatalf("Quad() error = %v", err)
	}
	want := Quad{{0, 0}, {40, 0}, {40, 30}, {0, 30}}
	if q != want {
		t.Errorf("Quad() = %v, want %v", q, want)
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"vertices":[{},{"x":40},{"x":40,"y":30},{"y":30}]}` {
		t.Errorf("Marshal() = %s, absence not preserved", data)
	}
}

func TestBoundingBoxQuadWrongArity(t *testing.T) {
	for _, n := range []int{0, 1, 3, 5} {
		b := BoundingBox{Vertices: make([]Vertex, n)}
		_, err := b.Quad()
		if !IsSchemaError(err) {
			t.Errorf("Quad() with %d vertices: error = %v, want *SchemaError", n, err)
		}
	}
}

func TestWordTextNormalization(t *testing.T) {
	// "e" followed by a combining acute accent composes to U+00E9.
	w := Word{Symbols: []Symbol{{Text: "caf"}, {Text: "e"}, {Text: "\u0301"}}}
	if got := w.Text(); got != "caf\u00e9" {
		t.Errorf("Text() = %q, want %q", got, "caf\u00e9")
	}
}

func TestUnknownBlockTypePassesThrough(t *testing.T) {
	var b Block
	input := `{"blockType":"HOLOGRAM","confidence":0.5,"boundingBox":` + boxJSON + `,"paragraphs":[]}`
	if err := json.Unmarshal([]byte(input), &b); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if b.BlockType != "HOLOGRAM" {
		t.Errorf("BlockType = %q, want %q", b.BlockType, "HOLOGRAM")
	}
}
