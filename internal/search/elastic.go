// Package search wraps the hosted Elasticsearch index that backs property
// full-text search and autocomplete.
package search

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/olivere/elastic/v7"

	"stayBack/internal/models"
)

const PropertyIndex = "properties"

const PerPage = 18

// H is a syntax sugar to make dynamic-json code more readable.
type H map[string]interface{}

var propertyMapping = H{
	"mappings": H{
		"properties": H{
			"name":                 H{"type": "text"},
			"description":          H{"type": "text"},
			"status":               H{"type": "keyword"},
			"address_country":      H{"type": "text", "fields": H{"raw": H{"type": "keyword"}}},
			"address_state":        H{"type": "text"},
			"address_city":         H{"type": "text", "fields": H{"raw": H{"type": "keyword"}}},
			"address_neighborhood": H{"type": "text"},
			"wifi":                 H{"type": "boolean"},
			"washing_machine":      H{"type": "boolean"},
			"clothes_iron":         H{"type": "boolean"},
			"towels":               H{"type": "boolean"},
			"air_conditioning":     H{"type": "boolean"},
			"refrigerator":         H{"type": "boolean"},
			"heater":               H{"type": "boolean"},
		},
	},
}

type Client struct {
	es     *elastic.Client
	logger *log.Logger
}

func New(url string, logger *log.Logger) (*Client, error) {
	es, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheckInterval(10*time.Second),
	)
	if err != nil {
		return nil, err
	}

	c := &Client{es: es, logger: logger}
	if err := c.ensureIndex(); err != nil {
		return nil, err
	}
	return c, nil
}

func defaultCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

func (c *Client) ensureIndex() error {
	ctx, cancel := defaultCtx()
	defer cancel()

	exists, err := c.es.IndexExists(PropertyIndex).Do(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = c.es.CreateIndex(PropertyIndex).BodyJson(propertyMapping).Do(ctx)
	return err
}

// document flattens a property into the indexed fields.
func document(p models.Property) H {
	return H{
		"name":                 p.Name,
		"description":          p.Description,
		"status":               string(p.Status),
		"address_country":      p.Address.Country,
		"address_state":        p.Address.State,
		"address_city":         p.Address.City,
		"address_neighborhood": p.Address.Neighborhood,
		"wifi":                 p.Facility.Wifi,
		"washing_machine":      p.Facility.WashingMachine,
		"clothes_iron":         p.Facility.ClothesIron,
		"towels":               p.Facility.Towels,
		"air_conditioning":     p.Facility.AirConditioning,
		"refrigerator":         p.Facility.Refrigerator,
		"heater":               p.Facility.Heater,
	}
}

func (c *Client) IndexProperty(ctx context.Context, p models.Property) error {
	_, err := c.es.Index().
		Index(PropertyIndex).
		Id(strconv.Itoa(p.ID)).
		BodyJson(document(p)).
		Do(ctx)
	return err
}

func (c *Client) DeleteProperty(ctx context.Context, id int) error {
	_, err := c.es.Delete().
		Index(PropertyIndex).
		Id(strconv.Itoa(id)).
		Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return err
}

// SearchProperties runs the full-text query with facility filters and returns
// matching property ids in relevance order plus the total hit count.
func (c *Client) SearchProperties(ctx context.Context, req models.SearchRequest) ([]int, int64, error) {
	query := elastic.NewBoolQuery().
		Filter(elastic.NewTermQuery("status", string(models.PropertyStatusActive)))

	if req.Query != "" && req.Query != "*" {
		query = query.Must(elastic.NewMultiMatchQuery(req.Query,
			"name", "description", "address_city", "address_state", "address_country", "address_neighborhood"))
	} else {
		query = query.Must(elastic.NewMatchAllQuery())
	}

	facilities := map[string]*bool{
		"wifi":             req.Wifi,
		"washing_machine":  req.WashingMachine,
		"clothes_iron":     req.ClothesIron,
		"towels":           req.Towels,
		"air_conditioning": req.AirConditioning,
		"refrigerator":     req.Refrigerator,
		"heater":           req.Heater,
	}
	for field, value := range facilities {
		if value != nil {
			query = query.Filter(elastic.NewTermQuery(field, *value))
		}
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}

	result, err := c.es.Search().
		Index(PropertyIndex).
		Query(query).
		From((page - 1) * PerPage).
		Size(PerPage).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		id, err := strconv.Atoi(hit.Id)
		if err != nil {
			c.logger.Printf("search: non-numeric document id %q", hit.Id)
			continue
		}
		ids = append(ids, id)
	}
	return ids, result.TotalHits(), nil
}

// Autocomplete collects names, cities and countries of active properties for
// the search box suggestions.
func (c *Client) Autocomplete(ctx context.Context) ([]string, error) {
	query := elastic.NewTermQuery("status", string(models.PropertyStatusActive))

	result, err := c.es.Search().
		Index(PropertyIndex).
		Query(query).
		FetchSourceContext(elastic.NewFetchSourceContext(true).
			Include("name", "address_city", "address_country")).
		Size(1000).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	type source struct {
		Name    string `json:"name"`
		City    string `json:"address_city"`
		Country string `json:"address_country"`
	}

	results := []string{}
	for _, hit := range result.Hits.Hits {
		var src source
		if err := json.Unmarshal(hit.Source, &src); err != nil {
			c.logger.Printf("search: bad document source for id %s: %v", hit.Id, err)
			continue
		}
		results = append(results, src.Name, src.City, src.Country)
	}
	return results, nil
}
