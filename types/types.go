package types

// Document represents one raw news article handed to the ingestion pipeline.
// Documents are produced by the feed/scraping side and are immutable once
// they reach the pipeline.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Chunk is a bounded piece of a single document's content, the unit of
// embedding and retrieval. A chunk never spans documents.
type Chunk struct {
	Text       string
	DocumentID string
	Title      string
	URL        string
}

// Message senders as stored in the conversation transcript.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is a single entry in a session transcript.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}
