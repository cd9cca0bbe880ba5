package llm

import "context"

// purposeKey is the context key for the request purpose label.
type purposeKey struct{}

// Purpose labels used by clozeit's collaborators. They group rows in the
// request log and the `llm stats` output.
const (
	PurposePassage  = "passage-gen"
	PurposeAnalysis = "analysis"
	purposeUnknown  = "unknown"
)

// WithPurpose labels every request made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return purposeUnknown
}
