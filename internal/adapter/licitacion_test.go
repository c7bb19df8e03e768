package adapter

import (
	"testing"
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

func TestDecodeLicitacionFull(t *testing.T) {
	payload := `{
		"id": 12,
		"numero": "LPN-2026-004",
		"titulo": "Mantenimiento de servidores",
		"descripcion": "Contrato anual",
		"tipo": "Servicios",
		"monto": 125000.50,
		"moneda": "MXN",
		"entidad": "Secretaría de Salud",
		"estado": "publicada",
		"idUsuario": {"id": 2, "nombre": "Pedro", "apellido": "Lara"},
		"fecha_creacion": "2026-01-15T08:00:00Z"
	}`

	licitacion, fallbacks := DecodeLicitacion([]byte(payload))
	if len(fallbacks) != 0 {
		t.Fatalf("expected no fallbacks, got %v", fallbacks)
	}
	if licitacion.Numero != "LPN-2026-004" {
		t.Errorf("Numero = %q", licitacion.Numero)
	}
	if licitacion.Tipo != domain.LicitacionServicios {
		t.Errorf("Tipo = %q", licitacion.Tipo)
	}
	if licitacion.Estado != domain.LicitacionPublicada {
		t.Errorf("Estado = %q", licitacion.Estado)
	}
	if licitacion.Cliente != "Pedro Lara" {
		t.Errorf("Cliente = %q", licitacion.Cliente)
	}
	if !licitacion.IsActiva() {
		t.Error("published bid should be active")
	}
}

func TestLicitacionEstadoNormalization(t *testing.T) {
	cases := []struct {
		estado string
		want   domain.LicitacionStatus
	}{
		{"En Evaluación", domain.LicitacionEnEvaluacion},
		{"en evaluacion", domain.LicitacionEnEvaluacion},
		{"Adjudicada", domain.LicitacionAdjudicada},
		{"ADJUDICADO al proveedor X", domain.LicitacionAdjudicada},
		{"Cancelado por la entidad", domain.LicitacionCancelada},
		{"Publicada", domain.LicitacionPublicada},
		{"borrador", domain.LicitacionBorrador},
		{"estado raro", domain.LicitacionBorrador},
		{"", domain.LicitacionBorrador},
	}
	for _, tc := range cases {
		licitacion, _ := DecodeLicitacion([]byte(`{"id":1,"estado":"` + tc.estado + `"}`))
		if licitacion.Estado != tc.want {
			t.Errorf("estado %q: got %q, want %q", tc.estado, licitacion.Estado, tc.want)
		}
	}
}

func TestDecodeLicitacionDefaults(t *testing.T) {
	fixedNow(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	licitacion, fallbacks := DecodeLicitacion([]byte(`{"id":31,"monto":-50}`))
	if licitacion.Numero != "LIC-31" {
		t.Errorf("Numero = %q, want LIC-31", licitacion.Numero)
	}
	if licitacion.Monto != 0 {
		t.Errorf("Monto = %v, want 0 after clamping", licitacion.Monto)
	}
	if licitacion.Moneda != "USD" {
		t.Errorf("Moneda = %q, want USD", licitacion.Moneda)
	}
	if licitacion.Tipo != domain.LicitacionServicios {
		t.Errorf("Tipo = %q, want servicios", licitacion.Tipo)
	}
	if licitacion.Estado != domain.LicitacionBorrador {
		t.Errorf("Estado = %q, want borrador", licitacion.Estado)
	}
	if licitacion.Cliente != SentinelCliente {
		t.Errorf("Cliente = %q, want sentinel", licitacion.Cliente)
	}
	if len(fallbacks) == 0 {
		t.Fatal("expected fallbacks for a near-empty payload")
	}
}

func TestLicitacionUpdateToBackendOnlyPresentFields(t *testing.T) {
	monto := 9000.0
	payload := LicitacionUpdateToBackend(LicitacionUpdate{Monto: &monto})
	if len(payload) != 1 {
		t.Fatalf("payload = %v, want exactly one field", payload)
	}
	if payload["monto"] != monto {
		t.Errorf("monto = %v", payload["monto"])
	}
}
