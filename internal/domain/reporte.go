package domain

import "time"

// Reporte is an immutable snapshot of aggregate ticket metrics. Reportes are
// append-only: once created they are never updated, only listed.
type Reporte struct {
	ID                  int64
	Fecha               time.Time
	TicketsAbiertos     int
	TicketsCerrados     int
	TiempoProResolucion float64 // mean resolution time, hours
}
