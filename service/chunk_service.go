package service

import (
	"regexp"
	"strings"

	"github.com/behalnihal/rag-chatbot-backend/types"
)

// DefaultChunkSize is the chunk byte bound used when none is configured.
const DefaultChunkSize = 300

// A sentence ends at ., ? or ! followed by whitespace. The punctuation stays
// attached to its sentence.
var sentenceBoundary = regexp.MustCompile(`[.?!]\s+`)

// ChunkText splits text into sentences and greedily packs them into chunks
// of at most boundBytes, flushing the running buffer whenever the next
// sentence would push it over the bound. A single sentence longer than the
// bound becomes its own oversized chunk rather than being split further.
// Empty input yields no chunks. The result is deterministic.
func ChunkText(text string, boundBytes int) []string {
	if boundBytes <= 0 {
		boundBytes = DefaultChunkSize
	}

	sentences := splitSentences(text)
	var chunks []string
	var buf string
	for _, sentence := range sentences {
		if buf == "" {
			buf = sentence
			continue
		}
		candidate := buf + " " + sentence
		if len(candidate) > boundBytes {
			chunks = append(chunks, buf)
			buf = sentence
			continue
		}
		buf = candidate
	}
	if buf != "" {
		chunks = append(chunks, buf)
	}
	return chunks
}

// ChunkDocument chunks a document's content and attaches its provenance to
// every chunk.
func ChunkDocument(doc types.Document, boundBytes int) []types.Chunk {
	texts := ChunkText(doc.Content, boundBytes)
	chunks := make([]types.Chunk, 0, len(texts))
	for _, text := range texts {
		chunks = append(chunks, types.Chunk{
			Text:       text,
			DocumentID: doc.ID,
			Title:      doc.Title,
			URL:        doc.URL,
		})
	}
	return chunks
}

func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		// loc[0] is the punctuation mark itself
		if s := strings.TrimSpace(text[start : loc[0]+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
