package insight

import "context"

// Backend is the single capability every text-generation provider implements:
// generate free-form text from a prompt under a system role.
type Backend interface {
	Generate(ctx context.Context, prompt, systemRole string) (string, error)
}

// Generator turns a transcript into narrative insights. Results are returned
// verbatim for display; nothing is parsed back into structured fields.
type Generator interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	ActionItems(ctx context.Context, text string) (string, error)
	KeyDecisions(ctx context.Context, text string) (string, error)
}
