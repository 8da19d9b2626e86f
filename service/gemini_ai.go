package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiService generates answers with Gemini. Several API keys can be
// supplied; on a failed call the service rotates to the next key and retries
// once, which rides out per-key quota exhaustion.
type GeminiService struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	model      *genai.GenerativeModel
	modelName  string
	mu         sync.Mutex
	log        *zap.SugaredLogger
}

func NewGeminiService(ctx context.Context, apiKeys []string, modelName string, log *zap.SugaredLogger) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{
		apiKeys:   apiKeys,
		modelName: modelName,
		log:       log.With("service", "GeminiService"),
	}
	if err := service.initClient(ctx); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	return nil
}

func (s *GeminiService) rotateAPIKey(ctx context.Context) error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient(ctx)
}

func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		s.log.Warnw("generation failed, rotating API key", "error", err)
		if rerr := s.rotateAPIKey(ctx); rerr != nil {
			return "", rerr
		}
		resp, err = s.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", err
		}
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	if content == "" {
		return "", errors.New("empty response generated")
	}
	return content, nil
}

func (s *GeminiService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Close()
}
