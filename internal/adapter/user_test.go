package adapter

import (
	"testing"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

func TestDecodeUser(t *testing.T) {
	user, fallbacks := DecodeUser([]byte(`{"id":4,"nombre":"Ana","apellido":"Ruiz","correo":"ana@example.com","rol":"Soporte"}`))
	if len(fallbacks) != 0 {
		t.Fatalf("expected no fallbacks, got %v", fallbacks)
	}
	if user.Username != "ana@example.com" {
		t.Errorf("Username = %q", user.Username)
	}
	if user.Name != "Ana Ruiz" {
		t.Errorf("Name = %q", user.Name)
	}
	if user.Role != domain.RoleSoporte {
		t.Errorf("Role = %q, want soporte", user.Role)
	}
	if user.Avatar != "AR" {
		t.Errorf("Avatar = %q, want AR", user.Avatar)
	}
}

func TestDecodeUserMissingFields(t *testing.T) {
	user, fallbacks := DecodeUser([]byte(`{"id":9}`))
	if user.Username != SentinelEmail {
		t.Errorf("Username = %q, want sentinel email", user.Username)
	}
	if user.Name != SentinelEmail {
		t.Errorf("Name = %q, want username fallback", user.Name)
	}
	// Unknown role is carried as-is; the role gate fails closed on it.
	if user.Role != "" {
		t.Errorf("Role = %q, want empty", user.Role)
	}
	if len(user.Permissions) != 0 {
		t.Errorf("Permissions = %v, want none for unknown role", user.Permissions)
	}
	if len(fallbacks) == 0 {
		t.Fatal("expected fallbacks")
	}
}

func TestUserPermissionsByRole(t *testing.T) {
	user, _ := DecodeUser([]byte(`{"id":1,"correo":"a@b.c","rol":"admin"}`))
	want := map[string]bool{"tickets": true, "licitaciones": true, "reportes": true, "admin": true}
	if len(user.Permissions) != len(want) {
		t.Fatalf("Permissions = %v", user.Permissions)
	}
	for _, p := range user.Permissions {
		if !want[p] {
			t.Errorf("unexpected permission %q", p)
		}
	}
}

func TestInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Ana Ruiz", "AR"},
		{"ana", "A"},
		{"José María Castro", "JM"},
		{"", "?"},
	}
	for _, tc := range cases {
		if got := Initials(tc.name); got != tc.want {
			t.Errorf("Initials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDecodeReporteDefaults(t *testing.T) {
	reporte, _ := DecodeReporte([]byte(`{"idReporte":3,"ticketsAbiertos":5,"ticketsCerrados":2,"tiempoProResolucion":4.5,"fecha":"2026-01-20T00:00:00Z"}`))
	if reporte.ID != 3 {
		t.Errorf("ID = %d", reporte.ID)
	}
	if reporte.TicketsAbiertos != 5 || reporte.TicketsCerrados != 2 {
		t.Errorf("counts = %d/%d", reporte.TicketsAbiertos, reporte.TicketsCerrados)
	}
	if reporte.TiempoProResolucion != 4.5 {
		t.Errorf("TiempoProResolucion = %v", reporte.TiempoProResolucion)
	}
}
