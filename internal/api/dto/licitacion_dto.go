package dto

import (
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// CreateLicitacionRequest payload.
type CreateLicitacionRequest struct {
	Numero      string                  `json:"numero"`
	Titulo      string                  `json:"titulo"`
	Descripcion string                  `json:"descripcion"`
	Tipo        domain.LicitacionTipo   `json:"tipo"`
	Monto       float64                 `json:"monto"`
	Moneda      string                  `json:"moneda"`
	Entidad     string                  `json:"entidad"`
	Propuesta   string                  `json:"propuesta"`
	Estado      domain.LicitacionStatus `json:"estado"`
	FechaInicio *time.Time              `json:"fechaInicio"`
	FechaCierre *time.Time              `json:"fechaCierre"`
}

// UpdateLicitacionRequest carries a partial update.
type UpdateLicitacionRequest struct {
	Titulo      *string                  `json:"titulo"`
	Descripcion *string                  `json:"descripcion"`
	Tipo        *domain.LicitacionTipo   `json:"tipo"`
	Monto       *float64                 `json:"monto"`
	Moneda      *string                  `json:"moneda"`
	Entidad     *string                  `json:"entidad"`
	Propuesta   *string                  `json:"propuesta"`
	Estado      *domain.LicitacionStatus `json:"estado"`
	FechaCierre *time.Time               `json:"fechaCierre"`
}

// LicitacionResponse is the full canonical bid.
type LicitacionResponse struct {
	ID            int64                   `json:"id"`
	Numero        string                  `json:"numero"`
	Titulo        string                  `json:"titulo"`
	Descripcion   string                  `json:"descripcion"`
	Tipo          domain.LicitacionTipo   `json:"tipo"`
	Monto         float64                 `json:"monto"`
	Moneda        string                  `json:"moneda"`
	Entidad       string                  `json:"entidad"`
	Cliente       string                  `json:"cliente"`
	Propuesta     string                  `json:"propuesta"`
	Estado        domain.LicitacionStatus `json:"estado"`
	Activa        bool                    `json:"activa"`
	FechaInicio   *time.Time              `json:"fechaInicio"`
	FechaCierre   *time.Time              `json:"fechaCierre"`
	FechaCreacion time.Time               `json:"fechaCreacion"`
}

// NewLicitacionResponse maps a domain bid.
func NewLicitacionResponse(l domain.Licitacion) LicitacionResponse {
	return LicitacionResponse{
		ID:            l.ID,
		Numero:        l.Numero,
		Titulo:        l.Titulo,
		Descripcion:   l.Descripcion,
		Tipo:          l.Tipo,
		Monto:         l.Monto,
		Moneda:        l.Moneda,
		Entidad:       l.Entidad,
		Cliente:       l.Cliente,
		Propuesta:     l.Propuesta,
		Estado:        l.Estado,
		Activa:        l.IsActiva(),
		FechaInicio:   l.FechaInicio,
		FechaCierre:   l.FechaCierre,
		FechaCreacion: l.FechaCreacion,
	}
}

// NewLicitacionListResponse maps a bid slice.
func NewLicitacionListResponse(licitaciones []domain.Licitacion) []LicitacionResponse {
	items := make([]LicitacionResponse, 0, len(licitaciones))
	for i := range licitaciones {
		items = append(items, NewLicitacionResponse(licitaciones[i]))
	}
	return items
}
