package cmd

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/gcv/pkg/transport"
	"github.com/lehigh-university-libraries/gcv/pkg/vision"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Run document text detection on an image",
	Long: `Send an image to the Cloud Vision images:annotate API with DOCUMENT_TEXT_DETECTION
and print the result.

--mode text prints the flat list of text annotations (the whole-image span first,
then one entry per word). --mode document prints the page/block/paragraph/word/symbol
tree, which can also be rendered as hOCR.

Credentials are read from GCV_API_KEY (a bearer token, e.g. from
"gcloud auth application-default print-access-token"). When it is unset,
Application Default Credentials are used.`,
	RunE: runAnnotate,
}

var (
	imagePath     string
	mode          string
	format        string
	transportName string
	outputPath    string
	endpoint      string
)

func init() {
	RootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().StringVar(&imagePath, "image", "", "Path to input image file (required)")
	annotateCmd.Flags().StringVar(&mode, "mode", "text", "Result to print: text, document")
	annotateCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml, text, hocr (document mode only)")
	annotateCmd.Flags().StringVar(&transportName, "transport", "rest", "Transport to use: rest, grpc")
	annotateCmd.Flags().StringVar(&endpoint, "endpoint", transport.DefaultEndpoint, "images:annotate URL for the rest transport")
	annotateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (prints to stdout if not specified)")

	err := annotateCmd.MarkFlagRequired("image")
	if err != nil {
		slog.Error("Unable to mark image as required", "err", err)
		os.Exit(1)
	}
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	if mode != "text" && mode != "document" {
		return fmt.Errorf("unsupported mode: %s", mode)
	}
	if format == "hocr" && mode != "document" {
		return fmt.Errorf("hocr output requires --mode document")
	}

	img, err := loadImage(imagePath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	t, closeFn, err := newTransport(ctx, transportName)
	if err != nil {
		return err
	}
	defer closeFn()

	slog.Info("Annotating image", "image", imagePath, "transport", transportName, "mode", mode)
	resp, err := vision.NewClient(t).Annotate(ctx, img)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if mode == "document" {
		fta, err := resp.FullTextAnnotation()
		if err != nil {
			return err
		}
		return renderDocument(out, format, fta)
	}

	annotations, err := resp.TextAnnotations()
	if err != nil {
		return err
	}
	return renderAnnotations(out, format, annotations)
}

func loadImage(path string) (vision.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return vision.Image{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return vision.Image{}, fmt.Errorf("failed to decode image: %w", err)
	}
	b := decoded.Bounds()
	slog.Debug("Loaded image", "path", path, "image_size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))

	return vision.NewImage(decoded)
}

func newTransport(ctx context.Context, name string) (vision.Transport, func() error, error) {
	noop := func() error { return nil }
	credential, haveCredential := transport.CredentialFromEnv()

	switch name {
	case "rest":
		if haveCredential {
			return transport.NewREST(credential, transport.WithEndpoint(endpoint)), noop, nil
		}
		slog.Debug("GCV_API_KEY not set, using Application Default Credentials")
		ts, err := transport.DefaultTokenSource(ctx)
		if err != nil {
			return nil, nil, err
		}
		return transport.NewRESTWithTokenSource(ts, transport.WithEndpoint(endpoint)), noop, nil
	case "grpc":
		var opts []option.ClientOption
		if haveCredential {
			opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential})))
		}
		g, err := transport.NewGRPC(ctx, opts...)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported transport: %s", name)
	}
}
