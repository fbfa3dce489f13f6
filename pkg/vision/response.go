package vision

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Response wraps one decoded service reply. Accessors re-derive their
// result from the payload on every call and never modify it, so a
// Response may be shared between goroutines.
type Response struct {
	payload json.RawMessage
}

// ParseResponse validates body as a JSON object and checks it for a
// service error. Errors reported at the top level or for the single
// requested image are returned as *ServiceError.
func ParseResponse(body []byte) (*Response, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, &SchemaError{Path: "$", Msg: "payload is not valid JSON"}
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &SchemaError{Path: "$", Msg: "expected object"}
	}
	payload := json.RawMessage(bytes.Clone(trimmed))

	for _, path := range []Path{serviceErrorPath, imageErrorPath} {
		if err := serviceError(payload, path); err != nil {
			return nil, err
		}
	}
	return &Response{payload: payload}, nil
}

func serviceError(payload json.RawMessage, path Path) error {
	raw, err := path.Lookup(payload)
	if err != nil {
		// absent, or responses[0] itself is missing
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return &SchemaError{Path: path.String(), Msg: "expected object"}
	}
	if len(fields) == 0 {
		return nil
	}
	se := &ServiceError{Raw: bytes.Clone(raw)}
	// code/message/status are best effort; Raw is authoritative
	_ = json.Unmarshal(raw, se)
	return se
}

// Raw returns a copy of the payload.
func (r *Response) Raw() []byte {
	return bytes.Clone(r.payload)
}

// TextAnnotations decodes responses[0].textAnnotations. The first
// element that fails to decode aborts the call; no partial list is
// returned.
func (r *Response) TextAnnotations() ([]TextAnnotation, error) {
	raw, err := textAnnotationsPath.Lookup(r.payload)
	if err != nil {
		return nil, &SchemaError{Path: textAnnotationsPath.String(), Msg: "text_annotations must be array", Err: err}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, &SchemaError{Path: textAnnotationsPath.String(), Msg: "text_annotations must be array"}
	}

	annotations := make([]TextAnnotation, 0, len(elems))
	for i, elem := range elems {
		var a TextAnnotation
		if err := json.Unmarshal(elem, &a); err != nil {
			return nil, &SchemaError{
				Path: fmt.Sprintf("%s[%d]", textAnnotationsPath, i),
				Msg:  "cannot decode text annotation",
				Err:  err,
			}
		}
		annotations = append(annotations, a)
	}
	return annotations, nil
}

// FullTextAnnotation decodes responses[0].fullTextAnnotation in one pass.
func (r *Response) FullTextAnnotation() (FullTextAnnotation, error) {
	return decodeAt[FullTextAnnotation](r.payload, fullTextAnnotationPath)
}

// IsSchemaError reports whether err is or wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsServiceError reports whether err is or wraps a *ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
