package vision

import (
	"fmt"
)

// EncodeError is returned when an image cannot be serialized for transport.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("vision: encode image: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// ServiceError carries the structured error object returned by the service.
type ServiceError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
	// Raw is the error object exactly as it appeared in the payload.
	Raw []byte `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Raw)
}

// SchemaError reports a payload path that is missing or has an unexpected shape.
type SchemaError struct {
	Path string
	Msg  string
	Err  error
}

func (e *SchemaError) Error() string {
	s := fmt.Sprintf("schema error at %s: %s", e.Path, e.Msg)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func missingField(node, field string) error {
	return &SchemaError{Path: node + "." + field, Msg: "missing required field"}
}
