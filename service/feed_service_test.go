package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Example News</title>
    <item>
      <title>Budget passes</title>
      <link>https://news.example/budget</link>
      <guid>budget-1</guid>
      <description>&lt;p&gt;The budget passed &lt;b&gt;today&lt;/b&gt;.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Storm warning</title>
      <link>https://news.example/storm</link>
      <guid>storm-1</guid>
      <description>short</description>
      <content:encoded>&lt;p&gt;A storm is expected tonight. Residents should prepare.&lt;/p&gt;</content:encoded>
    </item>
    <item>
      <title>Empty item</title>
      <link>https://news.example/empty</link>
      <guid>empty-1</guid>
      <description></description>
    </item>
  </channel>
</rss>`

func TestFetchArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	svc := NewFeedService(zap.NewNop().Sugar())
	docs, err := svc.FetchArticles(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2, "item without text is skipped")

	assert.Equal(t, "budget-1", docs[0].ID)
	assert.Equal(t, "Budget passes", docs[0].Title)
	assert.Equal(t, "https://news.example/budget", docs[0].URL)
	assert.Equal(t, "The budget passed today.", docs[0].Content, "html stripped")

	assert.Equal(t, "storm-1", docs[1].ID)
	assert.Equal(t, "A storm is expected tonight. Residents should prepare.", docs[1].Content,
		"content:encoded wins over description")
}

func TestFetchArticlesHonoursLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	svc := NewFeedService(zap.NewNop().Sugar())
	docs, err := svc.FetchArticles(context.Background(), srv.URL, 1)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestFetchArticlesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewFeedService(zap.NewNop().Sugar())
	_, err := svc.FetchArticles(context.Background(), srv.URL, 0)
	require.Error(t, err)
}

func TestLoadArticlesDir(t *testing.T) {
	dir := t.TempDir()

	array := `[{"id":"a1","title":"One","url":"https://news.example/1","content":"First article."},
	           {"title":"Two","url":"https://news.example/2","content":"Second article."}]`
	single := `{"id":"b1","title":"Three","url":"https://news.example/3","content":"Third article."}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "batch.json"), []byte(array), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "single.json"), []byte(single), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not json"), 0o644))

	svc := NewFeedService(zap.NewNop().Sugar())
	docs, err := svc.LoadArticlesDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	byTitle := map[string]string{}
	for _, d := range docs {
		assert.NotEmpty(t, d.ID, "missing ids are generated")
		byTitle[d.Title] = d.Content
	}
	assert.Equal(t, "First article.", byTitle["One"])
	assert.Equal(t, "Second article.", byTitle["Two"])
	assert.Equal(t, "Third article.", byTitle["Three"])
}
