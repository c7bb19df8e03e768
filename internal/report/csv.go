package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

var ticketCSVHeader = []string{
	"ID", "Título", "Cliente", "Email", "Prioridad", "Categoría", "Estado",
	"Creado", "Actualizado",
}

// TicketsCSV renders tickets as a CSV document with a fixed column order.
// Quoting and escaping follow RFC 4180, so titles containing commas, quotes
// or newlines survive a round trip through any spreadsheet tool.
func TicketsCSV(tickets []domain.Ticket) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ticketCSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i := range tickets {
		t := &tickets[i]
		row := []string{
			fmt.Sprintf("%d", t.ID),
			t.Title,
			t.Customer,
			t.Email,
			string(t.Priority),
			string(t.Category),
			string(t.Status),
			t.CreatedAt.Format(time.RFC3339),
			t.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

var licitacionCSVHeader = []string{
	"ID", "Número", "Título", "Cliente", "Entidad", "Tipo", "Monto", "Moneda",
	"Estado", "Creada",
}

// LicitacionesCSV renders bids as a CSV document.
func LicitacionesCSV(licitaciones []domain.Licitacion) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(licitacionCSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i := range licitaciones {
		l := &licitaciones[i]
		row := []string{
			fmt.Sprintf("%d", l.ID),
			l.Numero,
			l.Titulo,
			l.Cliente,
			l.Entidad,
			string(l.Tipo),
			fmt.Sprintf("%.2f", l.Monto),
			l.Moneda,
			string(l.Estado),
			l.FechaCreacion.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
