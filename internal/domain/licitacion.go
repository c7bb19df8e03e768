package domain

import "time"

// LicitacionStatus enumerates bid lifecycle buckets. Upstream stores free-form
// strings; the adapter normalizes them into this set.
type LicitacionStatus string

const (
	LicitacionBorrador     LicitacionStatus = "borrador"
	LicitacionPublicada    LicitacionStatus = "publicada"
	LicitacionEnEvaluacion LicitacionStatus = "en-evaluacion"
	LicitacionAdjudicada   LicitacionStatus = "adjudicada"
	LicitacionCancelada    LicitacionStatus = "cancelada"
)

// LicitacionTipo enumerates tender types.
type LicitacionTipo string

const (
	LicitacionServicios   LicitacionTipo = "servicios"
	LicitacionProductos   LicitacionTipo = "productos"
	LicitacionObras       LicitacionTipo = "obras"
	LicitacionConsultoria LicitacionTipo = "consultoria"
)

// Licitacion is a formal bid/tender record.
type Licitacion struct {
	ID            int64
	Numero        string
	Titulo        string
	Descripcion   string
	Tipo          LicitacionTipo
	Monto         float64
	Moneda        string
	Entidad       string
	Cliente       string
	Propuesta     string
	Estado        LicitacionStatus
	FechaInicio   *time.Time
	FechaCierre   *time.Time
	FechaCreacion time.Time
}

// IsActiva reports whether the bid is still in play (published or under
// evaluation).
func (l *Licitacion) IsActiva() bool {
	return l.Estado == LicitacionPublicada || l.Estado == LicitacionEnEvaluacion
}
