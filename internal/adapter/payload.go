package adapter

import (
	"bytes"
	"encoding/json"
	"time"
)

// UserRef is a reference to an usuario embedded in another payload. Depending
// on the upstream revision it arrives either as a nested object or as a bare
// numeric foreign key.
type UserRef struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Username string `json:"username"`
	Correo   string `json:"correo"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Rol      string `json:"rol"`
}

// UnmarshalJSON accepts both the nested object form and the bare-ID form.
func (u *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '{' {
		return json.Unmarshal(data, &u.ID)
	}
	type alias UserRef
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*u = UserRef(a)
	return nil
}

// DisplayName resolves the best human-readable name for the reference.
func (u *UserRef) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Nombre != "" && u.Apellido != "" {
		return u.Nombre + " " + u.Apellido
	}
	if u.Nombre != "" {
		return u.Nombre
	}
	return u.Username
}

// TicketPayload is the superset of every ticket field observed across
// upstream revisions: the current REST shape (titulo/estado, flat customer
// columns) and the legacy shape (desc, nested idUsuario/idTecnico).
type TicketPayload struct {
	ID       int64 `json:"id"`
	IDTicket int64 `json:"idTicket"`

	Titulo      string `json:"titulo"`
	Title       string `json:"title"`
	Descripcion string `json:"descripcion"`
	Description string `json:"description"`
	Desc        string `json:"desc"`

	Prioridad string `json:"prioridad"`
	Priority  string `json:"priority"`
	Categoria string `json:"categoria"`
	Category  string `json:"category"`
	Estado    string `json:"estado"`
	Status    string `json:"status"`

	NombreCliente      string `json:"nombre_cliente"`
	Cliente            string `json:"cliente"`
	Customer           string `json:"customer"`
	NombreClienteCamel string `json:"nombreCliente"`

	EmailCliente  string `json:"email_cliente"`
	Correo        string `json:"correo"`
	Email         string `json:"email"`
	CorreoCliente string `json:"correoCliente"`

	TelefonoCliente      string `json:"telefono_cliente"`
	Telefono             string `json:"telefono"`
	Phone                string `json:"phone"`
	TelefonoClienteCamel string `json:"telefonoCliente"`

	FechaCreacion      string `json:"fecha_creacion"`
	CreatedAt          string `json:"createdAt"`
	FechaActualizacion string `json:"fecha_actualizacion"`
	UpdatedAt          string `json:"updatedAt"`
	FechaCierre        string `json:"fecha_cierre"`

	IDUsuario     *UserRef `json:"idUsuario"`
	IDTecnico     *UserRef `json:"idTecnico"`
	Tecnico       *UserRef `json:"tecnico"`
	NombreTecnico string   `json:"nombreTecnico"`
	AssignedTo    string   `json:"assignedTo"`

	Comentarios []ComentarioPayload `json:"comentarios"`
	Comments    []ComentarioPayload `json:"comments"`
}

// ComentarioPayload is the superset comment shape.
type ComentarioPayload struct {
	ID            int64    `json:"id"`
	IDComentario  int64    `json:"idComentario"`
	Autor         string   `json:"autor"`
	Author        string   `json:"author"`
	Usuario       *UserRef `json:"usuario"`
	Contenido     string   `json:"contenido"`
	Content       string   `json:"content"`
	Texto         string   `json:"texto"`
	FechaCreacion string   `json:"fecha_creacion"`
	Timestamp     string   `json:"timestamp"`
	Fecha         string   `json:"fecha"`
	Tipo          string   `json:"tipo"`
	Type          string   `json:"type"`
	Ticket        int64    `json:"ticket"`
}

// LicitacionPayload is the superset bid shape.
type LicitacionPayload struct {
	ID            int64    `json:"id"`
	Numero        string   `json:"numero"`
	Titulo        string   `json:"titulo"`
	Title         string   `json:"title"`
	Descripcion   string   `json:"descripcion"`
	Description   string   `json:"description"`
	Desc          string   `json:"desc"`
	Propuesta     string   `json:"propuesta"`
	Tipo          string   `json:"tipo"`
	Monto         float64  `json:"monto"`
	Moneda        string   `json:"moneda"`
	Entidad       string   `json:"entidad"`
	Estado        string   `json:"estado"`
	Status        string   `json:"status"`
	FechaInicio   string   `json:"fechaInicio"`
	FechaCierre   string   `json:"fechaCierre"`
	FechaCreacion string   `json:"fecha_creacion"`
	CreatedAt     string   `json:"createdAt"`
	IDUsuario     *UserRef `json:"idUsuario"`
}

// UsuarioPayload is the upstream operator account shape.
type UsuarioPayload struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Correo   string `json:"correo"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
	Role     string `json:"role"`
}

// ReportePayload is the upstream report snapshot shape.
type ReportePayload struct {
	ID                  int64   `json:"id"`
	IDReporte           int64   `json:"idReporte"`
	Fecha               string  `json:"fecha"`
	TicketsAbiertos     int     `json:"ticketsAbiertos"`
	TicketsCerrados     int     `json:"ticketsCerrados"`
	TiempoProResolucion float64 `json:"tiempoProResolucion"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate tries every layout the upstream has been observed to emit.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// firstNonEmpty returns the first non-empty candidate.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
