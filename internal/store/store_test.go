package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ricardo-aragon/ticashop-desk/internal/config"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
	"github.com/ricardo-aragon/ticashop-desk/internal/upstream"
)

// fakeBackend serves canned ticket and licitación lists and can be flipped
// into a failing mode to exercise the reload error path.
type fakeBackend struct {
	mu      sync.Mutex
	failing bool
	paths   []string

	tickets      string
	licitaciones string
}

func (f *fakeBackend) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

func (f *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		failing := f.failing
		f.paths = append(f.paths, r.URL.Path)
		f.mu.Unlock()
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/Ticket/":
			w.Write([]byte(f.tickets))
		case "/Licitacion/":
			w.Write([]byte(f.licitaciones))
		case "/Usuario/", "/Reporte/":
			w.Write([]byte("[]"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestStore(t *testing.T, admin bool) (*Store, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{
		tickets: `[
			{"id": 1, "titulo": "Primero", "nombreCliente": "Ana", "estado": "Abierto", "fecha_creacion": "2026-01-01T10:00:00Z"},
			{"id": 2, "titulo": "Segundo", "nombreCliente": "Luis", "estado": "Cerrado", "fecha_creacion": "2026-01-02T10:00:00Z"}
		]`,
		licitaciones: `[
			{"id": 7, "titulo": "Obra vial", "estado": "Publicada", "monto": 1000}
		]`,
	}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client := upstream.New(config.UpstreamConfig{BaseURL: srv.URL}, zap.NewNop(), nil)
	return New(client, admin, zap.NewNop(), nil), backend
}

func TestLoadCommitsSnapshot(t *testing.T) {
	st, _ := newTestStore(t, false)

	if st.Ready() {
		t.Fatal("store should not be ready before first load")
	}
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !st.Ready() {
		t.Fatal("store should be ready after load")
	}
	if got := len(st.Tickets()); got != 2 {
		t.Fatalf("got %d tickets, want 2", got)
	}
	if got := len(st.Licitaciones()); got != 1 {
		t.Fatalf("got %d licitaciones, want 1", got)
	}
	ticket, ok := st.Ticket(1)
	if !ok {
		t.Fatal("ticket 1 not found")
	}
	if ticket.Title != "Primero" || ticket.Status != domain.TicketStatusOpen {
		t.Errorf("ticket = %+v", ticket)
	}
	if want := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC); !ticket.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", ticket.CreatedAt, want)
	}
	licitacion, ok := st.Licitacion(7)
	if !ok {
		t.Fatal("licitacion 7 not found")
	}
	if licitacion.Estado != domain.LicitacionPublicada {
		t.Errorf("estado = %s", licitacion.Estado)
	}
}

func TestFailedReloadKeepsPreviousSnapshot(t *testing.T) {
	st, backend := newTestStore(t, false)

	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	before := st.LoadedAt()

	backend.setFailing(true)
	if err := st.Load(context.Background()); err == nil {
		t.Fatal("second Load should fail")
	}

	if got := len(st.Tickets()); got != 2 {
		t.Errorf("previous snapshot lost, got %d tickets", got)
	}
	if st.Err() == nil {
		t.Error("Err should report the failed reload")
	}
	if !st.LoadedAt().Equal(before) {
		t.Error("LoadedAt should not advance on a failed reload")
	}

	backend.setFailing(false)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("recovery Load: %v", err)
	}
	if st.Err() != nil {
		t.Errorf("Err should clear after a successful reload: %v", st.Err())
	}
}

func TestStaleReloadIsDiscarded(t *testing.T) {
	var (
		mu        sync.Mutex
		ticketReq int
	)
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/Licitacion/" {
			w.Write([]byte("[]"))
			return
		}
		mu.Lock()
		ticketReq++
		n := ticketReq
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-release
			w.Write([]byte(`[{"id": 1, "titulo": "Viejo"}]`))
			return
		}
		w.Write([]byte(`[{"id": 1, "titulo": "Nuevo"}]`))
	}))
	t.Cleanup(srv.Close)

	client := upstream.New(config.UpstreamConfig{BaseURL: srv.URL}, zap.NewNop(), nil)
	st := New(client, false, zap.NewNop(), nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		st.Load(context.Background())
	}()
	<-firstStarted

	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("second Load: %v", err)
	}

	close(release)
	<-done

	ticket, ok := st.Ticket(1)
	if !ok {
		t.Fatal("ticket 1 not found")
	}
	if ticket.Title != "Nuevo" {
		t.Errorf("stale reload clobbered the newer snapshot: %q", ticket.Title)
	}
}

func TestAdminLoadFetchesUsersAndReportes(t *testing.T) {
	st, backend := newTestStore(t, true)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	backend.mu.Lock()
	seen := make(map[string]bool, len(backend.paths))
	for _, p := range backend.paths {
		seen[p] = true
	}
	backend.mu.Unlock()

	for _, path := range []string{"/Ticket/", "/Licitacion/", "/Usuario/", "/Reporte/"} {
		if !seen[path] {
			t.Errorf("admin reload never hit %s", path)
		}
	}
}

func TestNonAdminLoadSkipsAdminResources(t *testing.T) {
	st, backend := newTestStore(t, false)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	for _, p := range backend.paths {
		if p == "/Usuario/" || p == "/Reporte/" {
			t.Errorf("non-admin reload hit %s", p)
		}
	}
}

func TestUpsertTicket(t *testing.T) {
	st, _ := newTestStore(t, false)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	st.UpsertTicket(domain.Ticket{ID: 1, Title: "Primero editado"})
	ticket, _ := st.Ticket(1)
	if ticket.Title != "Primero editado" {
		t.Errorf("replace by ID failed: %q", ticket.Title)
	}
	if got := len(st.Tickets()); got != 2 {
		t.Errorf("replace should not grow the list, got %d", got)
	}

	st.UpsertTicket(domain.Ticket{ID: 9, Title: "Nuevo"})
	all := st.Tickets()
	if len(all) != 3 {
		t.Fatalf("got %d tickets, want 3", len(all))
	}
	if all[0].ID != 9 {
		t.Errorf("new ticket should be first, got ID %d", all[0].ID)
	}
}

func TestRemoveAndSplice(t *testing.T) {
	st, _ := newTestStore(t, false)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	st.RemoveTicket(2)
	if _, ok := st.Ticket(2); ok {
		t.Error("ticket 2 should be gone")
	}

	st.SpliceComment(1, domain.Comment{ID: 40, Content: "hola"})
	ticket, _ := st.Ticket(1)
	if len(ticket.Comments) != 1 || ticket.Comments[0].ID != 40 {
		t.Errorf("comments = %+v", ticket.Comments)
	}
}

func TestCloseMakesSplicesNoOps(t *testing.T) {
	st, _ := newTestStore(t, false)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	st.Close()
	st.UpsertTicket(domain.Ticket{ID: 99})
	if got := len(st.Tickets()); got != 0 {
		t.Errorf("closed store should hold nothing, got %d tickets", got)
	}
	if err := st.Load(context.Background()); err != nil {
		t.Errorf("Load on a closed store should be a no-op, got %v", err)
	}
	if st.Ready() {
		t.Error("closed store should never report ready")
	}
}

func TestAppendReporte(t *testing.T) {
	st, _ := newTestStore(t, true)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	st.AppendReporte(domain.Reporte{ID: 5, Fecha: time.Now()})
	reportes := st.Reportes()
	if len(reportes) != 1 || reportes[0].ID != 5 {
		t.Errorf("reportes = %+v", reportes)
	}
}
