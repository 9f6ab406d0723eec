package courier

import (
	"context"
	"net/http"
	"net/url"

	"github.com/example/shop-gateway/internal/domain"
)

// SearchAreas — поиск зоны доставки по свободному тексту; нужен витрине,
// чтобы получить destination area_id перед созданием отправления.
func (c *Client) SearchAreas(ctx context.Context, query string) ([]domain.Area, error) {
	if c.Mock {
		return []domain.Area{
			{ID: "mock-area-1", Name: "Mock District, Mock City"},
		}, nil
	}
	status, raw, err := c.invoke(ctx, http.MethodGet, "/maps/areas?input="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, providerError(status, raw)
	}
	var out struct {
		Areas []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"areas"`
	}
	if err := jsonUnmarshal(raw, &out); err != nil {
		return nil, err
	}
	areas := make([]domain.Area, 0, len(out.Areas))
	for _, a := range out.Areas {
		areas = append(areas, domain.Area{ID: a.ID, Name: a.Name})
	}
	return areas, nil
}
