package llm

import "context"

// Request is one inference call: a system instruction plus either a text
// payload or image bytes with a media type.
type Request struct {
	System    string
	Text      string
	ImageData []byte
	ImageMIME string
}

// Provider is a single inference capability endpoint. Implementations
// return the provider's raw text output; callers parse it.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
