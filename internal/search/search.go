package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
)

const DefaultIndex = "catalog"

// Doc is the indexed representation of a sellable catalog item.
type Doc struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Tags        string  `json:"tags,omitempty"`
	Price       float64 `json:"price"`
}

func DocID(kind string, id uint) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

func PrebuiltDoc(p *models.PrebuiltFidget) Doc {
	return Doc{
		ID:          DocID(models.OwnerPrebuilt, p.ID),
		Kind:        models.OwnerPrebuilt,
		Name:        p.Name,
		Description: p.Description,
		Tags:        p.Tags,
		Price:       p.Price,
	}
}

func OtherDoc(o *models.OtherFidget) Doc {
	return Doc{
		ID:          DocID(models.OwnerOtherFidget, o.ID),
		Kind:        models.OwnerOtherFidget,
		Name:        o.Name,
		Description: o.Description,
		Price:       o.Price,
	}
}

type Client struct {
	ES    *elasticsearch.Client
	Index string
}

func NewClient(url, user, password string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("es: create client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("es: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("es: info: %s: %s", res.Status(), body)
	}

	return &Client{ES: es, Index: DefaultIndex}, nil
}

func (c *Client) IndexItem(ctx context.Context, doc Doc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("es: marshal doc: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.Index,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, c.ES)
	if err != nil {
		return fmt.Errorf("es: index %s: %w", doc.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es: index %s: %s", doc.ID, res.Status())
	}
	return nil
}

func (c *Client) DeleteItem(ctx context.Context, docID string) error {
	req := esapi.DeleteRequest{Index: c.Index, DocumentID: docID}
	res, err := req.Do(ctx, c.ES)
	if err != nil {
		return fmt.Errorf("es: delete %s: %w", docID, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete %s: %s", docID, res.Status())
	}
	return nil
}

// Query runs a fuzzy multi_match over name and description.
func (c *Client) Query(ctx context.Context, query string, from, size int) (int64, []Doc, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description", "tags"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := c.ES.Search(
		c.ES.Search.WithContext(ctx),
		c.ES.Search.WithIndex(c.Index),
		c.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("es: search: %s: %s", res.Status(), strings.TrimSpace(string(body)))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source Doc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("es: decode response: %w", err)
	}

	docs := make([]Doc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
