package usecases

import "github.com/karakusoft/faqbot/internal/textsplit"

// ChunkSelection is the query preprocessing policy. Some deployments shape
// long questions by retrieving only on the leading chunk; others pass the
// message through untouched. The history of the system has both variants,
// so the behavior is configuration, not a constant.
type ChunkSelection string

const (
	// SelectNone forwards the raw message to retrieval.
	SelectNone ChunkSelection = "none"
	// SelectFirstChunk splits the message and forwards only the first chunk.
	SelectFirstChunk ChunkSelection = "first-chunk"
)

// Preprocessor applies the configured chunk-selection policy to an
// incoming message before retrieval. Pure, no I/O.
type Preprocessor struct {
	mode     ChunkSelection
	splitter *textsplit.Splitter
}

// NewPreprocessor creates a Preprocessor. splitter may be nil when mode is
// SelectNone.
func NewPreprocessor(mode ChunkSelection, splitter *textsplit.Splitter) *Preprocessor {
	return &Preprocessor{mode: mode, splitter: splitter}
}

// Process returns the retrieval query derived from message.
func (p *Preprocessor) Process(message string) string {
	if p == nil || p.mode != SelectFirstChunk || p.splitter == nil {
		return message
	}
	chunks := p.splitter.Split(message)
	if len(chunks) == 0 {
		return ""
	}
	return chunks[0]
}
