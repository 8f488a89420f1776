// Package gen is the boundary to the hosted generation backend: one
// instruction string out, one free-text response back. All structure in the
// response is recovered downstream by heuristic parsing.
package gen

import "context"

// Request is a single generation call.
type Request struct {
	// Instruction is the full natural-language task, including the output
	// format directive.
	Instruction string
	// SearchQuery is a compact query used for web grounding. Ignored when
	// Grounded is false.
	SearchQuery string
	// Grounded augments the model with live web search results before
	// generating, as opposed to a purely parametric response.
	Grounded bool
}

// Generator produces free text for an instruction.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
