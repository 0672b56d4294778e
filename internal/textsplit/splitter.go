// Package textsplit provides recursive character text splitting.
// Text is split on a prioritized list of separator boundaries, coarsest
// first, falling back to finer separators only where a segment still
// exceeds the chunk size. Pure functions, no I/O.
package textsplit

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default number of overlapping characters
// between adjacent chunks.
const DefaultChunkOverlap = 200

// DefaultSeparators is the boundary priority used for internal documents:
// paragraph, line, Japanese full stop, Japanese comma, space, character.
var DefaultSeparators = []string{"\n\n", "\n", "。", "、", " ", ""}

// Splitter splits text into bounded-size overlapping chunks.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithSeparators overrides the separator priority list. The final entry
// should be "" so oversize segments can always fall back to character
// boundaries.
func WithSeparators(seps []string) Option {
	return func(s *Splitter) {
		if len(seps) > 0 {
			s.separators = seps
		}
	}
}

// New creates a Splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: DefaultSeparators,
	}
	for _, opt := range opts {
		opt(s)
	}
	// Overlap must stay strictly below the chunk size or the window
	// cannot advance.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}
	return s
}

// Split returns the chunks of text in order. Empty or whitespace-only
// input yields no chunks, not an error.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, s.separators)
}

// split recursively divides text using the first separator that occurs in
// it, then merges the resulting segments back into bounded chunks.
func (s *Splitter) split(text string, separators []string) []string {
	sep := ""
	var rest []string
	for i, candidate := range separators {
		if candidate == "" {
			sep = ""
			rest = nil
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			rest = separators[i+1:]
			break
		}
	}

	if sep == "" {
		return s.windows(text)
	}

	// SplitAfter keeps the separator attached to the preceding segment so
	// rejoining loses nothing.
	segments := strings.SplitAfter(text, sep)

	var chunks []string
	var fitting []string
	for _, seg := range segments {
		if utf8.RuneCountInString(seg) <= s.chunkSize {
			fitting = append(fitting, seg)
			continue
		}
		chunks = append(chunks, s.merge(fitting)...)
		fitting = nil
		chunks = append(chunks, s.split(seg, rest)...)
	}
	return append(chunks, s.merge(fitting)...)
}

// merge joins consecutive segments into chunks up to chunkSize, carrying
// up to overlap trailing characters into the next chunk.
func (s *Splitter) merge(segments []string) []string {
	var chunks []string
	var window []string
	total := 0

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(window, ""))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, seg := range segments {
		n := utf8.RuneCountInString(seg)
		if total+n > s.chunkSize && total > 0 {
			flush()
			for len(window) > 0 && (total > s.overlap || total+n > s.chunkSize) {
				total -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}
		window = append(window, seg)
		total += n
	}
	if total > 0 {
		flush()
	}
	return chunks
}

// windows slices text into fixed-size character windows with overlap,
// used when no separator remains.
func (s *Splitter) windows(text string) []string {
	runes := []rune(text)
	step := s.chunkSize - s.overlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
