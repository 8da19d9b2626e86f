package service

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/behalnihal/rag-chatbot-backend/types"
)

// FeedService produces the raw article documents consumed by ingestion,
// either from an RSS feed or from JSON files on disk. It is a thin
// collaborator in front of the pipeline and does no validation beyond
// dropping items with empty content.
type FeedService struct {
	client *http.Client
	log    *zap.SugaredLogger
}

func NewFeedService(log *zap.SugaredLogger) *FeedService {
	return &FeedService{
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log.With("service", "FeedService"),
	}
}

type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	Content     string `xml:"encoded"` // content:encoded, when the feed carries full text
}

// FetchArticles downloads an RSS feed and converts up to limit items into
// documents. Items without usable text are skipped.
func (s *FeedService) FetchArticles(ctx context.Context, feedURL string, limit int) ([]types.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %s: status %s", feedURL, resp.Status)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	var docs []types.Document
	for _, item := range feed.Channel.Items {
		if limit > 0 && len(docs) >= limit {
			break
		}
		content := item.Content
		if content == "" {
			content = item.Description
		}
		content = stripHTML(content)
		if content == "" {
			continue
		}

		id := item.GUID
		if id == "" {
			id = uuid.NewString()
		}
		docs = append(docs, types.Document{
			ID:      id,
			Title:   stripHTML(item.Title),
			URL:     strings.TrimSpace(item.Link),
			Content: content,
		})
	}
	s.log.Infow("fetched feed", "url", feedURL, "articles", len(docs))
	return docs, nil
}

// LoadArticlesDir reads every .json file in dir; a file holds either one
// document or an array of them.
func (s *FeedService) LoadArticlesDir(dir string) ([]types.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var docs []types.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var batch []types.Document
		if err := json.Unmarshal(data, &batch); err != nil {
			var single types.Document
			if err := json.Unmarshal(data, &single); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			batch = []types.Document{single}
		}
		for i := range batch {
			if batch[i].ID == "" {
				batch[i].ID = uuid.NewString()
			}
		}
		docs = append(docs, batch...)
	}
	s.log.Infow("loaded articles from directory", "dir", dir, "articles", len(docs))
	return docs, nil
}

var (
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)
)

func stripHTML(s string) string {
	s = htmlTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
