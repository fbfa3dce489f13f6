package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Known block types. The set is open; other values pass through as-is.
const (
	BlockTypeUnknown = "UNKNOWN"
	BlockTypeText    = "TEXT"
	BlockTypeTable   = "TABLE"
	BlockTypePicture = "PICTURE"
	BlockTypeRuler   = "RULER"
	BlockTypeBarcode = "BARCODE"
)

// FullTextAnnotation is the page → block → paragraph → word → symbol tree
// returned for document text detection.
type FullTextAnnotation struct {
	Pages []Page `json:"pages" yaml:"pages"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
}

type Page struct {
	Width  int     `json:"width,omitempty" yaml:"width,omitempty"`
	Height int     `json:"height,omitempty" yaml:"height,omitempty"`
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

type Block struct {
	BoundingBox BoundingBox `json:"boundingBox" yaml:"boundingBox"`
	BlockType   string      `json:"blockType" yaml:"blockType"`
	Confidence  float64     `json:"confidence" yaml:"confidence"`
	Paragraphs  []Paragraph `json:"paragraphs" yaml:"paragraphs"`
}

type Paragraph struct {
	BoundingBox BoundingBox `json:"boundingBox" yaml:"boundingBox"`
	Confidence  float64     `json:"confidence" yaml:"confidence"`
	Words       []Word      `json:"words" yaml:"words"`
}

type Word struct {
	BoundingBox BoundingBox `json:"boundingBox" yaml:"boundingBox"`
	Confidence  float64     `json:"confidence" yaml:"confidence"`
	Symbols     []Symbol    `json:"symbols" yaml:"symbols"`
}

type Symbol struct {
	BoundingBox BoundingBox `json:"boundingBox" yaml:"boundingBox"`
	Confidence  float64     `json:"confidence" yaml:"confidence"`
	Text        string      `json:"text" yaml:"text"`
}

// BoundingBox is the polygon of a document node. The service omits
// zero-valued coordinates, so each component may be absent.
type BoundingBox struct {
	Vertices []Vertex `json:"vertices" yaml:"vertices"`
}

type Vertex struct {
	X *int `json:"x,omitempty" yaml:"x,omitempty"`
	Y *int `json:"y,omitempty" yaml:"y,omitempty"`
}

// Point resolves absent components to zero.
func (v Vertex) Point() Point {
	var p Point
	if v.X != nil {
		p.X = *v.X
	}
	if v.Y != nil {
		p.Y = *v.Y
	}
	return p
}

// Quad converts the box for geometry. Boxes without exactly four
// vertices are rejected rather than indexed.
func (b BoundingBox) Quad() (Quad, error) {
	var q Quad
	if len(b.Vertices) != len(q) {
		return q, &SchemaError{
			Path: "boundingBox.vertices",
			Msg:  fmt.Sprintf("expected %d vertices, got %d", len(q), len(b.Vertices)),
		}
	}
	for i, v := range b.Vertices {
		q[i] = v.Point()
	}
	return q, nil
}

// Text concatenates the word's symbols in NFC form.
func (w Word) Text() string {
	var sb strings.Builder
	for _, s := range w.Symbols {
		sb.WriteString(s.Text)
	}
	return norm.NFC.String(sb.String())
}

// Text joins the paragraph's words with single spaces.
func (p Paragraph) Text() string {
	words := make([]string, 0, len(p.Words))
	for _, w := range p.Words {
		words = append(words, w.Text())
	}
	return strings.Join(words, " ")
}

func (f *FullTextAnnotation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Pages *[]Page `json:"pages"`
		Text  string  `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Pages == nil {
		return missingField("fullTextAnnotation", "pages")
	}
	*f = FullTextAnnotation{Pages: *raw.Pages, Text: raw.Text}
	return nil
}

func (p *Page) UnmarshalJSON(data []byte) error {
	var raw struct {
		Width  int      `json:"width"`
		Height int      `json:"height"`
		Blocks *[]Block `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Blocks == nil {
		return missingField("page", "blocks")
	}
	*p = Page{Width: raw.Width, Height: raw.Height, Blocks: *raw.Blocks}
	return nil
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var raw struct {
		BoundingBox *BoundingBox `json:"boundingBox"`
		BlockType   *string      `json:"blockType"`
		Confidence  *float64     `json:"confidence"`
		Paragraphs  *[]Paragraph `json:"paragraphs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.BoundingBox == nil:
		return missingField("block", "boundingBox")
	case raw.BlockType == nil:
		return missingField("block", "blockType")
	case raw.Confidence == nil:
		return missingField("block", "confidence")
	case raw.Paragraphs == nil:
		return missingField("block", "paragraphs")
	}
	*b = Block{
		BoundingBox: *raw.BoundingBox,
		BlockType:   *raw.BlockType,
		Confidence:  *raw.Confidence,
		Paragraphs:  *raw.Paragraphs,
	}
	return nil
}

func (p *Paragraph) UnmarshalJSON(data []byte) error {
	var raw struct {
		BoundingBox *BoundingBox `json:"boundingBox"`
		Confidence  *float64     `json:"confidence"`
		Words       *[]Word      `json:"words"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.BoundingBox == nil:
		return missingField("paragraph", "boundingBox")
	case raw.Confidence == nil:
		return missingField("paragraph", "confidence")
	case raw.Words == nil:
		return missingField("paragraph", "words")
	}
	*p = Paragraph{
		BoundingBox: *raw.BoundingBox,
		Confidence:  *raw.Confidence,
		Words:       *raw.Words,
	}
	return nil
}

func (w *Word) UnmarshalJSON(data []byte) error {
	var raw struct {
		BoundingBox *BoundingBox `json:"boundingBox"`
		Confidence  *float64     `json:"confidence"`
		Symbols     *[]Symbol    `json:"symbols"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.BoundingBox == nil:
		return missingField("word", "boundingBox")
	case raw.Confidence == nil:
		return missingField("word", "confidence")
	case raw.Symbols == nil:
		return missingField("word", "symbols")
	}
	*w = Word{
		BoundingBox: *raw.BoundingBox,
		Confidence:  *raw.Confidence,
		Symbols:     *raw.Symbols,
	}
	return nil
}

func (s *Symbol) UnmarshalJSON(data []byte) error {
	var raw struct {
		BoundingBox *BoundingBox `json:"boundingBox"`
		Confidence  *float64     `json:"confidence"`
		Text        *string      `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.BoundingBox == nil:
		return missingField("symbol", "boundingBox")
	case raw.Confidence == nil:
		return missingField("symbol", "confidence")
	case raw.Text == nil:
		return missingField("symbol", "text")
	}
	*s = Symbol{
		BoundingBox: *raw.BoundingBox,
		Confidence:  *raw.Confidence,
		Text:        *raw.Text,
	}
	return nil
}

func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	var raw struct {
		Vertices *[]Vertex `json:"vertices"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Vertices == nil {
		return missingField("boundingBox", "vertices")
	}
	b.Vertices = *raw.Vertices
	return nil
}
