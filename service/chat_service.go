package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/behalnihal/rag-chatbot-backend/database"
	"github.com/behalnihal/rag-chatbot-backend/types"
)

const answerPromptTemplate = `You are a helpful assistant answering questions about recent news articles.
Use only the context passages below to answer. Answer concisely and cite the
article titles you used when possible. If the context does not contain the
answer, say that you don't know.

Context:
%s

Question: %s`

const contextSeparator = "\n---\n"

// ChatService runs one chat turn end to end: validate, resolve the session,
// embed the query, search the index, assemble the grounded prompt, generate
// and persist the exchange. Stages are strictly sequential; nothing is
// cached between requests and prior turns are not folded into retrieval.
type ChatService struct {
	embedder  Embedder
	index     database.VectorIndex
	generator Generator
	store     database.SessionStore
	topK      int
	log       *zap.SugaredLogger
}

func NewChatService(embedder Embedder, index database.VectorIndex, generator Generator, store database.SessionStore, topK int, log *zap.SugaredLogger) *ChatService {
	if topK <= 0 {
		topK = 3
	}
	return &ChatService{
		embedder:  embedder,
		index:     index,
		generator: generator,
		store:     store,
		topK:      topK,
		log:       log.With("service", "ChatService"),
	}
}

// resolveSession returns the session id for this turn and whether it was
// freshly generated because the caller supplied none.
func resolveSession(sessionID string) (string, bool) {
	if strings.TrimSpace(sessionID) == "" {
		return uuid.NewString(), true
	}
	return sessionID, false
}

func (s *ChatService) Chat(ctx context.Context, query, sessionID string) (*types.ChatResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", types.ErrInvalidRequest)
	}

	id, isNew := resolveSession(sessionID)
	if isNew {
		s.log.Infow("created session", "session", id)
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", types.ErrRetrieval, err)
	}

	// An empty result set is valid: the prompt then tells the model no
	// articles matched.
	results, err := s.index.Search(ctx, vector, s.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", types.ErrRetrieval, err)
	}

	prompt := buildPrompt(query, results)

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrGeneration, err)
	}

	// A failed append fails the whole request: the answer is withheld rather
	// than returned alongside a transcript that silently dropped the turn.
	err = s.store.Append(ctx, id,
		types.Message{Sender: types.SenderUser, Text: query},
		types.Message{Sender: types.SenderBot, Text: answer},
	)
	if err != nil {
		return nil, err
	}

	return &types.ChatResponse{Answer: answer, SessionID: id}, nil
}

func (s *ChatService) History(ctx context.Context, sessionID string) ([]types.Message, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session id must not be empty", types.ErrInvalidRequest)
	}
	return s.store.ReadAll(ctx, sessionID)
}

func (s *ChatService) ClearSession(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: session id must not be empty", types.ErrInvalidRequest)
	}
	return s.store.Clear(ctx, sessionID)
}

func buildPrompt(query string, results []database.SearchResult) string {
	var contextBlock string
	if len(results) == 0 {
		contextBlock = "No relevant articles were found."
	} else {
		parts := make([]string, 0, len(results))
		for _, r := range results {
			parts = append(parts, fmt.Sprintf("[%s]\n%s", r.Payload.ArticleTitle, r.Payload.Text))
		}
		contextBlock = strings.Join(parts, contextSeparator)
	}
	return fmt.Sprintf(answerPromptTemplate, contextBlock, query)
}
