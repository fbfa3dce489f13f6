package utils

import (
	"log/slog"
	"os"
	"regexp"
)

var (
	// ?key=VALUE, &api_key=VALUE, apiKey=VALUE, api-key=VALUE, access_token=VALUE
	keyPattern    = regexp.MustCompile(`([?&])(api[_\-]?[kK]ey|key|access_token)=([^&\s"]+)`)
	bearerPattern = regexp.MustCompile(`Bearer\s+([A-Za-z0-9_\-\.]+)`)
	// Google OAuth access tokens, e.g. when echoed back in an error body
	googleTokenPattern = regexp.MustCompile(`ya29\.[A-Za-z0-9_\-\.]+`)
)

// MaskSensitiveData masks credentials that may appear in error messages,
// URLs and response bodies before they reach a log.
func MaskSensitiveData(s string) string {
	if s == "" {
		return s
	}

	s = keyPattern.ReplaceAllString(s, `${1}${2}=***MASKED***`)
	s = bearerPattern.ReplaceAllString(s, `Bearer ***MASKED***`)
	s = googleTokenPattern.ReplaceAllString(s, `***MASKED***`)

	return s
}

// MaskSensitiveError wraps an error and masks sensitive data when the error is converted to string
func MaskSensitiveError(err error) error {
	if err == nil {
		return nil
	}
	return &maskedError{err: err}
}

type maskedError struct {
	err error
}

func (e *maskedError) Error() string {
	return MaskSensitiveData(e.err.Error())
}

func (e *maskedError) Unwrap() error {
	return e.err
}

// TruncateBody shortens a response body for error messages.
// The default limit is 500 bytes.
func TruncateBody(body []byte, maxLen ...int) string {
	limit := 500
	if len(maxLen) > 0 && maxLen[0] > 0 {
		limit = maxLen[0]
	}
	s := string(body)
	if len(s) > limit {
		return s[:limit] + "... (truncated)"
	}
	return s
}

func ExitOnError(msg string, err error) {
	slog.Error(msg, "err", MaskSensitiveError(err))
	os.Exit(1)
}
