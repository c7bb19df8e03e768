package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ricardo-aragon/ticashop-desk/internal/adapter"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// ListLicitaciones returns every bid, normalized.
func (c *Client) ListLicitaciones(ctx context.Context) ([]domain.Licitacion, error) {
	raw, err := c.do(ctx, http.MethodGet, "/Licitacion/", nil, nil)
	if err != nil {
		return nil, err
	}
	licitaciones, fb := adapter.DecodeLicitacionList(raw)
	c.logFallbacks(fb)
	return licitaciones, nil
}

// ListLicitacionesByEstado filters server-side on the raw estado token.
func (c *Client) ListLicitacionesByEstado(ctx context.Context, estado string) ([]domain.Licitacion, error) {
	query := url.Values{"estado": {estado}}
	raw, err := c.do(ctx, http.MethodGet, "/Licitacion/", query, nil)
	if err != nil {
		return nil, err
	}
	licitaciones, fb := adapter.DecodeLicitacionList(raw)
	c.logFallbacks(fb)
	return licitaciones, nil
}

// GetLicitacion fetches one bid by ID.
func (c *Client) GetLicitacion(ctx context.Context, id int64) (domain.Licitacion, error) {
	raw, err := c.do(ctx, http.MethodGet, licitacionPath(id), nil, nil)
	if err != nil {
		return domain.Licitacion{}, err
	}
	licitacion, fb := adapter.DecodeLicitacion(raw)
	c.logFallbacks(fb)
	return licitacion, nil
}

// CreateLicitacion posts a new bid and returns the normalized result.
func (c *Client) CreateLicitacion(ctx context.Context, draft adapter.LicitacionDraft) (domain.Licitacion, error) {
	raw, err := c.do(ctx, http.MethodPost, "/Licitacion/", nil, adapter.LicitacionToBackend(draft))
	if err != nil {
		return domain.Licitacion{}, err
	}
	licitacion, fb := adapter.DecodeLicitacion(raw)
	c.logFallbacks(fb)
	return licitacion, nil
}

// UpdateLicitacion patches only the fields present in the partial update.
func (c *Client) UpdateLicitacion(ctx context.Context, id int64, update adapter.LicitacionUpdate) (domain.Licitacion, error) {
	raw, err := c.do(ctx, http.MethodPatch, licitacionPath(id), nil, adapter.LicitacionUpdateToBackend(update))
	if err != nil {
		return domain.Licitacion{}, err
	}
	licitacion, fb := adapter.DecodeLicitacion(raw)
	c.logFallbacks(fb)
	return licitacion, nil
}

// DeleteLicitacion removes a bid.
func (c *Client) DeleteLicitacion(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, licitacionPath(id), nil, nil)
	return err
}

func licitacionPath(id int64) string {
	return fmt.Sprintf("/Licitacion/%d/", id)
}
