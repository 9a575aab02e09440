package policy

import "context"

// Engine decides at composition time whether a configured filter may be
// used in a chain.
type Engine interface {
	// Evaluate checks a filter spec against loaded policies and returns a verdict.
	Evaluate(ctx context.Context, input *EvalInput) (*EvalResult, error)

	// Reload reloads policies from the source (file, remote, etc.).
	Reload(ctx context.Context) error
}
