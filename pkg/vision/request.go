package vision

// FeatureDocumentTextDetection is the only feature this package requests.
const FeatureDocumentTextDetection = "DOCUMENT_TEXT_DETECTION"

// Request is the images:annotate request body.
type Request struct {
	Requests []AnnotateImageRequest `json:"requests"`
}

type AnnotateImageRequest struct {
	Image    ImageContent `json:"image"`
	Features []Feature    `json:"features"`
}

type ImageContent struct {
	Content string `json:"content"`
}

type Feature struct {
	Type string `json:"type"`
}

// NewRequest builds a single-image document text detection request.
func NewRequest(img Image) Request {
	return Request{
		Requests: []AnnotateImageRequest{
			{
				Image:    ImageContent{Content: img.Base64()},
				Features: []Feature{{Type: FeatureDocumentTextDetection}},
			},
		},
	}
}
