package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/adapter"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// ListTickets returns every ticket, normalized.
func (c *Client) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	raw, err := c.do(ctx, http.MethodGet, "/Ticket/", nil, nil)
	if err != nil {
		return nil, err
	}
	tickets, fb := adapter.DecodeTicketList(raw)
	c.logFallbacks(fb)
	return tickets, nil
}

// ListTicketsByEstado filters server-side on the raw estado token.
func (c *Client) ListTicketsByEstado(ctx context.Context, estado string) ([]domain.Ticket, error) {
	query := url.Values{"estado": {estado}}
	raw, err := c.do(ctx, http.MethodGet, "/Ticket/", query, nil)
	if err != nil {
		return nil, err
	}
	tickets, fb := adapter.DecodeTicketList(raw)
	c.logFallbacks(fb)
	return tickets, nil
}

// ListTicketsByUsuario returns tickets opened by one customer account.
func (c *Client) ListTicketsByUsuario(ctx context.Context, usuarioID int64) ([]domain.Ticket, error) {
	query := url.Values{"idUsuario": {strconv.FormatInt(usuarioID, 10)}}
	raw, err := c.do(ctx, http.MethodGet, "/Ticket/", query, nil)
	if err != nil {
		return nil, err
	}
	tickets, fb := adapter.DecodeTicketList(raw)
	c.logFallbacks(fb)
	return tickets, nil
}

// ListTicketsByTecnico returns tickets assigned to one technician.
func (c *Client) ListTicketsByTecnico(ctx context.Context, tecnicoID int64) ([]domain.Ticket, error) {
	query := url.Values{"idTecnico": {strconv.FormatInt(tecnicoID, 10)}}
	raw, err := c.do(ctx, http.MethodGet, "/Ticket/", query, nil)
	if err != nil {
		return nil, err
	}
	tickets, fb := adapter.DecodeTicketList(raw)
	c.logFallbacks(fb)
	return tickets, nil
}

// GetTicket fetches one ticket by ID.
func (c *Client) GetTicket(ctx context.Context, id int64) (domain.Ticket, error) {
	raw, err := c.do(ctx, http.MethodGet, ticketPath(id), nil, nil)
	if err != nil {
		return domain.Ticket{}, err
	}
	ticket, fb := adapter.DecodeTicket(raw)
	c.logFallbacks(fb)
	return ticket, nil
}

// CreateTicket posts a new ticket and returns the normalized result.
func (c *Client) CreateTicket(ctx context.Context, draft adapter.TicketDraft) (domain.Ticket, error) {
	raw, err := c.do(ctx, http.MethodPost, "/Ticket/", nil, adapter.TicketToBackend(draft))
	if err != nil {
		return domain.Ticket{}, err
	}
	ticket, fb := adapter.DecodeTicket(raw)
	c.logFallbacks(fb)
	return ticket, nil
}

// UpdateTicket patches only the fields present in the partial update.
func (c *Client) UpdateTicket(ctx context.Context, id int64, update adapter.TicketUpdate) (domain.Ticket, error) {
	raw, err := c.do(ctx, http.MethodPatch, ticketPath(id), nil, adapter.TicketUpdateToBackend(update))
	if err != nil {
		return domain.Ticket{}, err
	}
	ticket, fb := adapter.DecodeTicket(raw)
	c.logFallbacks(fb)
	return ticket, nil
}

// DeleteTicket removes a ticket.
func (c *Client) DeleteTicket(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, ticketPath(id), nil, nil)
	return err
}

// CloseTicket invokes the cerrar action endpoint with the closing timestamp.
func (c *Client) CloseTicket(ctx context.Context, id int64, closedAt time.Time) (domain.Ticket, error) {
	body := map[string]any{"fecha_cierre": closedAt.Format(time.RFC3339)}
	raw, err := c.do(ctx, http.MethodPatch, ticketPath(id)+"cerrar/", nil, body)
	if err != nil {
		return domain.Ticket{}, err
	}
	ticket, fb := adapter.DecodeTicket(raw)
	c.logFallbacks(fb)
	return ticket, nil
}

// AssignTecnico invokes the asignar_tecnico action endpoint.
func (c *Client) AssignTecnico(ctx context.Context, id, tecnicoID int64) (domain.Ticket, error) {
	body := map[string]any{"idTecnico": tecnicoID}
	raw, err := c.do(ctx, http.MethodPatch, ticketPath(id)+"asignar_tecnico/", nil, body)
	if err != nil {
		return domain.Ticket{}, err
	}
	ticket, fb := adapter.DecodeTicket(raw)
	c.logFallbacks(fb)
	return ticket, nil
}

// EscalatePriority invokes the escalar_prioridad action endpoint.
func (c *Client) EscalatePriority(ctx context.Context, id int64) (domain.Ticket, error) {
	raw, err := c.do(ctx, http.MethodPatch, ticketPath(id)+"escalar_prioridad/", nil, nil)
	if err != nil {
		return domain.Ticket{}, err
	}
	ticket, fb := adapter.DecodeTicket(raw)
	c.logFallbacks(fb)
	return ticket, nil
}

func ticketPath(id int64) string {
	return fmt.Sprintf("/Ticket/%d/", id)
}
