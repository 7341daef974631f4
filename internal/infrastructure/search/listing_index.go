package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/livity/realestate-api/internal/domain/entity"
	"github.com/livity/realestate-api/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

// ListingMapping is the index mapping used by EnsureIndex at startup.
const ListingMapping = `{
  "mappings": {
    "properties": {
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "city":        {"type": "text", "fields": {"raw": {"type": "keyword", "normalizer": "lower"}}},
      "type":        {"type": "keyword"},
      "price":       {"type": "double"},
      "furnished":   {"type": "boolean"},
      "bedrooms":    {"type": "integer"},
      "bathrooms":   {"type": "integer"},
      "owner_id":    {"type": "keyword"},
      "created_at":  {"type": "date"}
    }
  },
  "settings": {
    "analysis": {"normalizer": {"lower": {"type": "custom", "filter": ["lowercase"]}}}
  }
}`

// ListingIndex keeps a searchable copy of listings in Elasticsearch. Postgres
// stays the source of truth; searches return ids only.
type ListingIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewListingIndex(es *elasticsearch.Client, index string) *ListingIndex {
	return &ListingIndex{es: es, index: index}
}

type listingDoc struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	City        string  `json:"city"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Furnished   bool    `json:"furnished"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	OwnerID     string  `json:"owner_id"`
	CreatedAt   string  `json:"created_at"`
}

func (i *ListingIndex) Index(ctx context.Context, l *entity.Listing) error {
	b, err := json.Marshal(listingDoc{
		Title:       l.Title,
		Description: l.Description,
		City:        l.Address.City,
		Type:        string(l.Type),
		Price:       l.Price,
		Furnished:   l.Furnished,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		OwnerID:     l.OwnerID,
		CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := esapi.IndexRequest{Index: i.index, DocumentID: l.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("index listing %s: %w", l.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index listing %s: %s", l.ID, res.Status())
	}
	return nil
}

// Search returns matching listing ids, best match first.
func (i *ListingIndex) Search(ctx context.Context, f entity.ListingFilter) ([]string, error) {
	b, err := json.Marshal(buildQuery(f))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search listings: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func buildQuery(f entity.ListingFilter) map[string]any {
	var (
		must   []any
		filter []any
	)
	if s := strings.TrimSpace(f.Search); s != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":  s,
				"fields": []string{"title^3", "city^2", "description"},
			},
		})
	}
	if c := strings.TrimSpace(f.City); c != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"city.raw": strings.ToLower(c)}})
	}
	if f.Type != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"type": string(f.Type)}})
	}
	if f.MinPrice > 0 || f.MaxPrice > 0 {
		rng := map[string]any{}
		if f.MinPrice > 0 {
			rng["gte"] = f.MinPrice
		}
		if f.MaxPrice > 0 {
			rng["lte"] = f.MaxPrice
		}
		filter = append(filter, map[string]any{"range": map[string]any{"price": rng}})
	}

	boolQ := map[string]any{}
	if len(must) > 0 {
		boolQ["must"] = must
	}
	if len(filter) > 0 {
		boolQ["filter"] = filter
	}

	q := map[string]any{
		"query":   map[string]any{"bool": boolQ},
		"_source": false,
		"from":    max(f.Offset, 0),
		"size":    pageSize(f.Limit),
	}
	if len(must) == 0 {
		q["sort"] = []any{map[string]any{"created_at": "desc"}}
	}
	return q
}

func pageSize(limit int) int {
	switch {
	case limit <= 0:
		return 50
	case limit > 100:
		return 100
	}
	return limit
}

var _ repository.ListingIndex = (*ListingIndex)(nil)
