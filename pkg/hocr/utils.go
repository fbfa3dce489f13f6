package hocr

import (
	"fmt"
	"math"
	"strings"

	"github.com/lehigh-university-libraries/gcv/pkg/vision"
	"golang.org/x/net/html"
)

// FromFullTextAnnotation renders a document annotation as an hOCR document.
// Blocks map to ocr_carea, paragraphs to ocr_par and words to ocrx_word.
// Elements whose bounding box is not a four-vertex polygon are written
// without a bbox.
func FromFullTextAnnotation(fta vision.FullTextAnnotation) string {
	var pages []string
	var blockIndex, parIndex, wordIndex int

	for p, page := range fta.Pages {
		var sb strings.Builder
		fmt.Fprintf(&sb, "<div class='ocr_page' id='page_%d' title='bbox 0 0 %d %d'>\n", p+1, page.Width, page.Height)
		for _, block := range page.Blocks {
			blockIndex++
			fmt.Fprintf(&sb, "<div class='ocr_carea' id='block_%d'%s>\n", blockIndex, title(block.BoundingBox, block.Confidence, false))
			for _, paragraph := range block.Paragraphs {
				parIndex++
				fmt.Fprintf(&sb, "<p class='ocr_par' id='par_%d'%s>", parIndex, title(paragraph.BoundingBox, paragraph.Confidence, false))
				for i, word := range paragraph.Words {
					wordIndex++
					if i > 0 {
						sb.WriteString(" ")
					}
					fmt.Fprintf(&sb, "<span class='ocrx_word' id='word_%d'%s>%s</span>",
						wordIndex, title(word.BoundingBox, word.Confidence, true), html.EscapeString(word.Text()))
				}
				sb.WriteString("</p>\n")
			}
			sb.WriteString("</div>\n")
		}
		sb.WriteString("</div>")
		pages = append(pages, sb.String())
	}

	return WrapInHOCRDocument(strings.Join(pages, "\n"))
}

// title builds the hOCR title attribute for an element, including the
// leading space, or returns "" when there is nothing to report.
func title(box vision.BoundingBox, confidence float64, withConf bool) string {
	var props []string
	if q, err := box.Quad(); err == nil {
		r := q.Bounds()
		props = append(props, fmt.Sprintf("bbox %d %d %d %d", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y))
	}
	if withConf {
		props = append(props, fmt.Sprintf("x_wconf %d", int(math.Round(confidence*100))))
	}
	if len(props) == 0 {
		return ""
	}
	return fmt.Sprintf(" title='%s'", strings.Join(props, "; "))
}

// WrapInHOCRDocument wraps content in a complete hOCR HTML document
func WrapInHOCRDocument(content string) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
<head>
<title></title>
<meta http-equiv="Content-Type" content="text/html;charset=utf-8" />
<meta name='ocr-system' content='gcv' />
<meta name='ocr-capabilities' content='ocr_page ocr_carea ocr_par ocrx_word' />
</head>
<body>
%s
</body>
</html>`, content)
}
