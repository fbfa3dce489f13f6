package transport

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	gax "github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
)

// annotator is the subset of vision.ImageAnnotatorClient used here.
type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// GRPC sends requests through the Cloud Vision gRPC API. Requests and
// replies cross this type as proto3 JSON, the same encoding the REST
// API uses.
type GRPC struct {
	client annotator
}

// NewGRPC dials the image annotator service. Credentials are resolved by
// the client library unless given in opts.
func NewGRPC(ctx context.Context, opts ...option.ClientOption) (*GRPC, error) {
	c, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vision client: %w", err)
	}
	return &GRPC{client: c}, nil
}

func (g *GRPC) Annotate(ctx context.Context, body []byte) ([]byte, error) {
	var req visionpb.BatchAnnotateImagesRequest
	if err := protojson.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("failed to convert request: %w", err)
	}

	resp, err := g.client.BatchAnnotateImages(ctx, &req)
	if err != nil {
		st, ok := status.FromError(err)
		if !ok {
			return nil, err
		}
		return errorPayload(st)
	}

	reply, err := protojson.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to convert response: %w", err)
	}
	return reply, nil
}

// Close releases the underlying connection.
func (g *GRPC) Close() error {
	return g.client.Close()
}

func errorPayload(st *status.Status) ([]byte, error) {
	obj, err := protojson.Marshal(st.Proto())
	if err != nil {
		return nil, st.Err()
	}
	return []byte(`{"error":` + string(obj) + `}`), nil
}
