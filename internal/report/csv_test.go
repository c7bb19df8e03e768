package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

func TestTicketsCSVEscaping(t *testing.T) {
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{
			ID:        1,
			Title:     `Falla, con "comillas" y saltos` + "\nsegunda línea",
			Customer:  "Cliente, S.A.",
			Email:     "c@example.com",
			Priority:  domain.TicketPriorityHigh,
			Category:  domain.TicketCategoryTechnical,
			Status:    domain.TicketStatusOpen,
			CreatedAt: created,
			UpdatedAt: created,
		},
	}

	data, err := TicketsCSV(tickets)
	if err != nil {
		t.Fatalf("TicketsCSV: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Título" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != tickets[0].Title {
		t.Errorf("title did not survive round trip: %q", rows[1][1])
	}
	if rows[1][2] != "Cliente, S.A." {
		t.Errorf("customer = %q", rows[1][2])
	}
}

func TestTicketsCSVEmpty(t *testing.T) {
	data, err := TicketsCSV(nil)
	if err != nil {
		t.Fatalf("TicketsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Errorf("empty export should be header only, got %d lines", len(lines))
	}
}

func TestLicitacionesCSVColumns(t *testing.T) {
	licitaciones := []domain.Licitacion{
		{
			ID:            3,
			Numero:        "LIC-3",
			Titulo:        "Obras menores",
			Cliente:       "Entidad X",
			Entidad:       "Municipio",
			Tipo:          domain.LicitacionObras,
			Monto:         1234.5,
			Moneda:        "USD",
			Estado:        domain.LicitacionPublicada,
			FechaCreacion: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		},
	}

	data, err := LicitacionesCSV(licitaciones)
	if err != nil {
		t.Fatalf("LicitacionesCSV: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if rows[1][6] != "1234.50" {
		t.Errorf("monto = %q, want 1234.50", rows[1][6])
	}
	if rows[1][8] != "publicada" {
		t.Errorf("estado = %q", rows[1][8])
	}
}

func TestTicketsXLSX(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: 1, Title: "Uno", CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}
	data, err := TicketsXLSX(tickets)
	if err != nil {
		t.Fatalf("TicketsXLSX: %v", err)
	}
	// XLSX files are zip archives.
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Error("output is not a zip archive")
	}
}
