package transport

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// CredentialEnv holds a bearer token, e.g. the output of
// `gcloud auth application-default print-access-token`.
const CredentialEnv = "GCV_API_KEY"

// VisionScope is the OAuth scope for Cloud Vision.
const VisionScope = "https://www.googleapis.com/auth/cloud-vision"

// CredentialFromEnv returns the bearer token from GCV_API_KEY.
func CredentialFromEnv() (string, bool) {
	credential := os.Getenv(CredentialEnv)
	return credential, credential != ""
}

// NewRESTFromEnv returns a REST transport using GCV_API_KEY, or false
// when the variable is unset.
func NewRESTFromEnv(opts ...Option) (*REST, bool) {
	credential, ok := CredentialFromEnv()
	if !ok {
		return nil, false
	}
	return NewREST(credential, opts...), true
}

// DefaultTokenSource resolves Application Default Credentials
// (GOOGLE_APPLICATION_CREDENTIALS, gcloud, or the metadata server).
func DefaultTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	ts, err := google.DefaultTokenSource(ctx, VisionScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}
	return ts, nil
}
