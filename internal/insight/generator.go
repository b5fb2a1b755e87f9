package insight

import (
	"context"
	"fmt"
)

const analystRole = "You are a professional meeting analyst. Summarize meetings concisely with key points, decisions, and action items."

const summaryPrompt = `Analyze this meeting transcript and provide:
1. Executive Summary (2-3 sentences)
2. Key Decisions (bullet points)
3. Action Items (bullet points)
4. Topics Discussed (bullet points)

Transcript:
%s`

const actionItemsPrompt = `Extract action items from this text. Format as a numbered list with: What, Who, and When.

Text: %s`

const keyDecisionsPrompt = `Extract the key business decisions made in this text. List each clearly.

Text: %s`

// Summarize generates the four-part narrative summary of a transcript.
func (g *implGenerator) Summarize(ctx context.Context, transcript string) (string, error) {
	g.logger.Info(ctx, "Generating meeting summary (%d chars of transcript)", len(transcript))
	return g.backend.Generate(ctx, fmt.Sprintf(summaryPrompt, transcript), analystRole)
}

// ActionItems extracts action items from any text: a summary, a raw
// transcript, or a prior extraction.
func (g *implGenerator) ActionItems(ctx context.Context, text string) (string, error) {
	return g.backend.Generate(ctx, fmt.Sprintf(actionItemsPrompt, text), analystRole)
}

// KeyDecisions extracts the decisions made in any text.
func (g *implGenerator) KeyDecisions(ctx context.Context, text string) (string, error) {
	return g.backend.Generate(ctx, fmt.Sprintf(keyDecisionsPrompt, text), analystRole)
}
