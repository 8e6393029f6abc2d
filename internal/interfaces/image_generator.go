package interfaces

import "context"

// ImageGenerator abstracts the external illustration service.
// Generate returns a public URL of the rendered image. The call is fallible
// and rate-limited; callers treat a failure as final for that page.
//
//go:generate mockery --name ImageGenerator --output ../mocks --outpkg mocks --case=underscore
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
