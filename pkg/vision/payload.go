package vision

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Step is one segment of a Path: an object key or an array index.
type Step struct {
	key     string
	index   int
	isIndex bool
}

func Key(name string) Step { return Step{key: name} }

func Index(i int) Step { return Step{index: i, isIndex: true} }

// Path addresses a subtree of an untyped JSON payload.
type Path []Step

var (
	textAnnotationsPath    = Path{Key("responses"), Index(0), Key("textAnnotations")}
	fullTextAnnotationPath = Path{Key("responses"), Index(0), Key("fullTextAnnotation")}
	imageErrorPath         = Path{Key("responses"), Index(0), Key("error")}
	serviceErrorPath       = Path{Key("error")}
)

func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		switch {
		case s.isIndex:
			sb.WriteString("[" + strconv.Itoa(s.index) + "]")
		case i > 0:
			sb.WriteString("." + s.key)
		default:
			sb.WriteString(s.key)
		}
	}
	if sb.Len() == 0 {
		return "$"
	}
	return sb.String()
}

// Lookup walks raw along the path and returns the subtree found there.
// A missing key, an out-of-range index, a container of the wrong kind
// and an explicit null all fail with a *SchemaError.
func (p Path) Lookup(raw json.RawMessage) (json.RawMessage, error) {
	cur := raw
	for i, s := range p {
		at := p[:i+1].String()
		if isNull(cur) {
			return nil, &SchemaError{Path: at, Msg: "missing"}
		}
		if s.isIndex {
			var arr []json.RawMessage
			if err := json.Unmarshal(cur, &arr); err != nil {
				return nil, &SchemaError{Path: p[:i].String(), Msg: "expected array"}
			}
			if s.index < 0 || s.index >= len(arr) {
				return nil, &SchemaError{Path: at, Msg: fmt.Sprintf("index out of range (len %d)", len(arr))}
			}
			cur = arr[s.index]
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(cur, &obj); err != nil {
			return nil, &SchemaError{Path: p[:i].String(), Msg: "expected object"}
		}
		v, ok := obj[s.key]
		if !ok {
			return nil, &SchemaError{Path: at, Msg: "missing"}
		}
		cur = v
	}
	if isNull(cur) {
		return nil, &SchemaError{Path: p.String(), Msg: "missing"}
	}
	return cur, nil
}

// decodeAt looks up path in raw and decodes the subtree into T.
func decodeAt[T any](raw json.RawMessage, path Path) (T, error) {
	var v T
	sub, err := path.Lookup(raw)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(sub, &v); err != nil {
		return v, &SchemaError{Path: path.String(), Msg: "cannot decode", Err: err}
	}
	return v, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
