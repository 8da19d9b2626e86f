package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behalnihal/rag-chatbot-backend/types"
)

func TestChunkTextEmptyInput(t *testing.T) {
	assert.Empty(t, ChunkText("", 300))
	assert.Empty(t, ChunkText("   \n\t  ", 300))
}

func TestChunkTextSingleShortSentence(t *testing.T) {
	chunks := ChunkText("The market rallied today.", 300)
	require.Len(t, chunks, 1)
	assert.Equal(t, "The market rallied today.", chunks[0])
}

func TestChunkTextPacksSentencesUpToBound(t *testing.T) {
	text := "One fine day. Another fine day. A third day arrives!"
	chunks := ChunkText(text, 40)

	require.Len(t, chunks, 2)
	assert.Equal(t, "One fine day. Another fine day.", chunks[0])
	assert.Equal(t, "A third day arrives!", chunks[1])
}

func TestChunkTextKeepsDelimiterWithSentence(t *testing.T) {
	chunks := ChunkText("Really? Yes! Good.", 10)
	require.Len(t, chunks, 2)
	assert.Equal(t, "Really?", chunks[0])
	assert.Equal(t, "Yes! Good.", chunks[1])
}

func TestChunkTextOversizedSentenceBecomesOwnChunk(t *testing.T) {
	long := strings.Repeat("word ", 100) + "end." // far beyond the bound
	text := "Short one. " + long + " Short two."

	chunks := ChunkText(text, 50)

	require.Len(t, chunks, 3)
	assert.Equal(t, "Short one.", chunks[0])
	assert.Greater(t, len(chunks[1]), 50, "oversized sentence is kept whole")
	assert.Equal(t, "Short two.", chunks[2])
}

func TestChunkTextBoundHolds(t *testing.T) {
	text := "Alpha beta gamma. Delta epsilon zeta? Eta theta iota! Kappa lambda. Mu nu xi omicron pi. Rho sigma tau."
	const bound = 45

	for _, chunk := range ChunkText(text, bound) {
		// a chunk may exceed the bound only when it is a single sentence
		if len(chunk) > bound {
			assert.Len(t, splitSentences(chunk), 1)
		}
	}
}

func TestChunkTextReconstructsSentenceSequence(t *testing.T) {
	text := "The senate voted on Tuesday. Markets reacted sharply! Was it expected? Analysts disagree. The vote passed with a narrow margin after a long debate."

	for _, bound := range []int{20, 50, 100, 300} {
		chunks := ChunkText(text, bound)
		rejoined := strings.Join(chunks, " ")
		assert.Equal(t, splitSentences(text), splitSentences(rejoined), "bound %d", bound)
	}
}

func TestChunkTextDeterministic(t *testing.T) {
	text := "First sentence here. Second sentence there. Third one everywhere!"
	assert.Equal(t, ChunkText(text, 40), ChunkText(text, 40))
}

func TestChunkDocumentCarriesProvenance(t *testing.T) {
	doc := types.Document{
		ID:      "doc-1",
		Title:   "Budget passes",
		URL:     "https://news.example/budget",
		Content: "The budget passed. Opposition objected loudly and at considerable length about it.",
	}

	chunks := ChunkDocument(doc, 40)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.Equal(t, "doc-1", chunk.DocumentID)
		assert.Equal(t, "Budget passes", chunk.Title)
		assert.Equal(t, "https://news.example/budget", chunk.URL)
		assert.NotEmpty(t, chunk.Text)
	}
}

func TestChunkDocumentEmptyContent(t *testing.T) {
	assert.Empty(t, ChunkDocument(types.Document{ID: "d"}, 300))
}
