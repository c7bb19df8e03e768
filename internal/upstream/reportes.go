package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ricardo-aragon/ticashop-desk/internal/adapter"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// ListReportes returns every metric snapshot, normalized.
func (c *Client) ListReportes(ctx context.Context) ([]domain.Reporte, error) {
	raw, err := c.do(ctx, http.MethodGet, "/Reporte/", nil, nil)
	if err != nil {
		return nil, err
	}
	reportes, fb := adapter.DecodeReporteList(raw)
	c.logFallbacks(fb)
	return reportes, nil
}

// LatestReporte returns the most recent snapshot, or nil when none exist.
func (c *Client) LatestReporte(ctx context.Context) (*domain.Reporte, error) {
	query := url.Values{"ordering": {"-fecha"}, "limit": {"1"}}
	raw, err := c.do(ctx, http.MethodGet, "/Reporte/", query, nil)
	if err != nil {
		return nil, err
	}
	reportes, fb := adapter.DecodeReporteList(raw)
	c.logFallbacks(fb)
	if len(reportes) == 0 {
		return nil, nil
	}
	return &reportes[0], nil
}

// CreateReporte appends an immutable snapshot. Reportes are never updated or
// deleted through the desk.
func (c *Client) CreateReporte(ctx context.Context, reporte domain.Reporte) (domain.Reporte, error) {
	raw, err := c.do(ctx, http.MethodPost, "/Reporte/", nil, adapter.ReporteToBackend(reporte))
	if err != nil {
		return domain.Reporte{}, err
	}
	created, fb := adapter.DecodeReporte(raw)
	c.logFallbacks(fb)
	return created, nil
}

// ListComentarios returns the comment thread for one ticket.
func (c *Client) ListComentarios(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	query := url.Values{"ticket": {fmt.Sprintf("%d", ticketID)}}
	raw, err := c.do(ctx, http.MethodGet, "/Comentario/", query, nil)
	if err != nil {
		return nil, err
	}
	comments, fb := adapter.DecodeCommentList(raw)
	c.logFallbacks(fb)
	return comments, nil
}

// CreateComentario appends a comment to a ticket's thread.
func (c *Client) CreateComentario(ctx context.Context, ticketID, usuarioID int64, texto string, commentType domain.CommentType) (domain.Comment, error) {
	body := map[string]any{
		"ticket": ticketID,
		"texto":  texto,
		"tipo":   string(commentType),
	}
	if usuarioID != 0 {
		body["usuario"] = usuarioID
	}
	raw, err := c.do(ctx, http.MethodPost, "/Comentario/", nil, body)
	if err != nil {
		return domain.Comment{}, err
	}
	comment, fb := adapter.DecodeComment(raw)
	c.logFallbacks(fb)
	return comment, nil
}

// DeleteComentario removes a comment.
func (c *Client) DeleteComentario(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/Comentario/%d/", id), nil, nil)
	return err
}
