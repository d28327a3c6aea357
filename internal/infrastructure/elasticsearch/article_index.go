package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

// ArticleIndex keeps published articles searchable by title, content and category.
type ArticleIndex struct {
	client *es.Client
	index  string
}

func NewArticleIndex(client *es.Client, index string) *ArticleIndex {
	return &ArticleIndex{client: client, index: index}
}

type articleDoc struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	AuthorID  string `json:"author_id"`
	CreatedAt string `json:"created_at"`
}

const articleMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "title":      {"type": "text"},
      "content":    {"type": "text"},
      "category":   {"type": "keyword"},
      "author_id":  {"type": "keyword"},
      "created_at": {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (i *ArticleIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	exists, err := esapi.IndicesExistsRequest{Index: []string{i.index}}.Do(c, i.client)
	if err != nil {
		return err
	}
	_ = exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{Index: i.index, Body: strings.NewReader(articleMapping)}.Do(c, i.client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es create index %s: %s", i.index, res.Status())
	}
	return nil
}

func (i *ArticleIndex) Index(ctx context.Context, a *entity.Article) error {
	if !a.Published {
		return i.Remove(ctx, a.ID)
	}
	b, err := json.Marshal(articleDoc{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Category:  a.Category,
		AuthorID:  a.AuthorID,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.index, DocumentID: a.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", a.ID, res.Status())
	}
	return nil
}

func (i *ArticleIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: i.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

func (i *ArticleIndex) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^3", "content", "category"},
				"fuzziness": "AUTO",
			},
		},
		"_source": false,
		"size":    limit,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.client.Search(
		i.client.Search.WithContext(c),
		i.client.Search.WithIndex(i.index),
		i.client.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

var _ repository.ArticleIndex = (*ArticleIndex)(nil)
