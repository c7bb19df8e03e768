package dto

import (
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// CreateUserRequest payload.
type CreateUserRequest struct {
	Nombre   string      `json:"nombre"`
	Apellido string      `json:"apellido"`
	Correo   string      `json:"correo"`
	Rol      domain.Role `json:"rol"`
	Password string      `json:"password"`
}

// UpdateUserRequest carries a partial account update.
type UpdateUserRequest struct {
	Nombre   *string      `json:"nombre"`
	Apellido *string      `json:"apellido"`
	Correo   *string      `json:"correo"`
	Rol      *domain.Role `json:"rol"`
	Password *string      `json:"password"`
}

// ReporteResponse is one immutable metric snapshot.
type ReporteResponse struct {
	ID                  int64     `json:"id"`
	Fecha               time.Time `json:"fecha"`
	TicketsAbiertos     int       `json:"ticketsAbiertos"`
	TicketsCerrados     int       `json:"ticketsCerrados"`
	TiempoProResolucion float64   `json:"tiempoProResolucion"`
}

// NewReporteResponse maps a domain snapshot.
func NewReporteResponse(r domain.Reporte) ReporteResponse {
	return ReporteResponse{
		ID:                  r.ID,
		Fecha:               r.Fecha,
		TicketsAbiertos:     r.TicketsAbiertos,
		TicketsCerrados:     r.TicketsCerrados,
		TiempoProResolucion: r.TiempoProResolucion,
	}
}

// NewUserListResponse maps a user slice.
func NewUserListResponse(users []domain.User) []UserResponse {
	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, NewUserResponse(users[i]))
	}
	return items
}

// NewReporteListResponse maps a snapshot slice.
func NewReporteListResponse(reportes []domain.Reporte) []ReporteResponse {
	items := make([]ReporteResponse, 0, len(reportes))
	for i := range reportes {
		items = append(items, NewReporteResponse(reportes[i]))
	}
	return items
}
