package contract

import "context"

// Classifier is the external language-model collaborator. It maps a free-text
// query to exactly one proposed tool invocation drawn from the tool set it was
// constructed with. Implementations may be slow or unavailable; callers apply
// their own timeout through ctx. The proposal is untrusted until it passes
// registry validation.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (ToolRequest, error)
}
