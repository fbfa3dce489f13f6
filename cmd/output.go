package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/gcv/pkg/hocr"
	"github.com/lehigh-university-libraries/gcv/pkg/vision"
	yaml "go.yaml.in/yaml/v3"
)

func renderAnnotations(w io.Writer, format string, annotations []vision.TextAnnotation) error {
	switch format {
	case "json", "yaml":
		return encode(w, format, annotations)
	case "text":
		for _, a := range annotations {
			q := a.BoundingPoly.Vertices
			lt := q.LeftTop()
			if _, err := fmt.Fprintf(w, "%q\tleft_top=(%d,%d)\twidth=%d\theight=%d\n", a.Description, lt.X, lt.Y, q.Width(), q.Height()); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for text annotations: %s", format)
	}
}

func renderDocument(w io.Writer, format string, fta vision.FullTextAnnotation) error {
	switch format {
	case "json", "yaml":
		return encode(w, format, fta)
	case "text":
		_, err := io.WriteString(w, documentText(fta))
		return err
	case "hocr":
		_, err := io.WriteString(w, hocr.FromFullTextAnnotation(fta))
		return err
	default:
		return fmt.Errorf("unsupported format for full text annotation: %s", format)
	}
}

// documentText prefers the service's own text and falls back to
// joining paragraphs when it is absent.
func documentText(fta vision.FullTextAnnotation) string {
	if fta.Text != "" {
		return fta.Text
	}
	var paragraphs []string
	for _, page := range fta.Pages {
		for _, block := range page.Blocks {
			for _, p := range block.Paragraphs {
				paragraphs = append(paragraphs, p.Text())
			}
		}
	}
	if len(paragraphs) == 0 {
		return ""
	}
	return strings.Join(paragraphs, "\n") + "\n"
}

func encode(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
