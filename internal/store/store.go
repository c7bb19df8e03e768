// Package store keeps the per-session view state. Each logged-in operator
// gets one Store holding the collections their panels render; reloads replace
// the collections atomically and keep the previous snapshot on failure.
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
	"github.com/ricardo-aragon/ticashop-desk/internal/observability"
	"github.com/ricardo-aragon/ticashop-desk/internal/upstream"
)

// Store caches the canonical collections one session works with. All methods
// are safe for concurrent use.
type Store struct {
	client  *upstream.Client
	logger  *zap.Logger
	metrics *observability.Metrics
	admin   bool

	mu           sync.RWMutex
	generation   uint64
	closed       bool
	loading      bool
	loadErr      error
	loadedAt     time.Time
	tickets      []domain.Ticket
	licitaciones []domain.Licitacion
	users        []domain.User
	reportes     []domain.Reporte
}

// New builds an empty store bound to a session-scoped client. Admin stores
// additionally load the operator accounts and metric snapshots.
func New(client *upstream.Client, admin bool, logger *zap.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		client:  client,
		logger:  logger,
		metrics: metrics,
		admin:   admin,
	}
}

// Load refetches every collection concurrently and commits the result as one
// atomic replacement. A reload that finishes after a newer one started is
// discarded; a failed reload keeps the previous snapshot and records the
// error. Load returns the first fetch error, if any.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.generation++
	gen := s.generation
	s.loading = true
	s.mu.Unlock()

	var (
		wg           sync.WaitGroup
		tickets      []domain.Ticket
		licitaciones []domain.Licitacion
		users        []domain.User
		reportes     []domain.Reporte
		errMu        sync.Mutex
		firstErr     error
	)
	record := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if tickets, err = s.client.ListTickets(ctx); err != nil {
			record(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if licitaciones, err = s.client.ListLicitaciones(ctx); err != nil {
			record(err)
		}
	}()
	if s.admin {
		wg.Add(2)
		go func() {
			defer wg.Done()
			var err error
			if users, err = s.client.ListUsuarios(ctx); err != nil {
				record(err)
			}
		}()
		go func() {
			defer wg.Done()
			var err error
			if reportes, err = s.client.ListReportes(ctx); err != nil {
				record(err)
			}
		}()
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		s.metrics.RecordReload("stale")
		return firstErr
	}
	s.loading = false
	s.loadErr = firstErr
	if firstErr != nil {
		s.metrics.RecordReload("error")
		if s.logger != nil {
			s.logger.Error("view-state reload failed", zap.Error(firstErr))
		}
		return firstErr
	}

	s.tickets = tickets
	s.licitaciones = licitaciones
	if s.admin {
		s.users = users
		s.reportes = reportes
	}
	s.loadedAt = time.Now()
	s.metrics.RecordReload("ok")
	return nil
}

// Ready reports whether at least one reload committed successfully.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed && !s.loadedAt.IsZero()
}

// Loading reports whether a reload is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error from the most recent reload, nil after a success.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// LoadedAt returns the commit time of the current snapshot.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Close detaches the store from its session. Later reloads and splices become
// no-ops so a stale goroutine cannot resurrect a logged-out session's state.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.tickets = nil
	s.licitaciones = nil
	s.users = nil
	s.reportes = nil
}

// Tickets returns a copy of the cached tickets.
func (s *Store) Tickets() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// Ticket returns the cached ticket with the given ID.
func (s *Store) Ticket(id int64) (domain.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tickets {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Ticket{}, false
}

// Licitaciones returns a copy of the cached bids.
func (s *Store) Licitaciones() []domain.Licitacion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Licitacion, len(s.licitaciones))
	copy(out, s.licitaciones)
	return out
}

// Licitacion returns the cached bid with the given ID.
func (s *Store) Licitacion(id int64) (domain.Licitacion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.licitaciones {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Licitacion{}, false
}

// Users returns a copy of the cached operator accounts.
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// Reportes returns a copy of the cached metric snapshots.
func (s *Store) Reportes() []domain.Reporte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Reporte, len(s.reportes))
	copy(out, s.reportes)
	return out
}

// UpsertTicket splices a created or updated ticket into the snapshot. New
// tickets are prepended so a fresh case shows up first.
func (s *Store) UpsertTicket(t domain.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.tickets {
		if s.tickets[i].ID == t.ID {
			s.tickets[i] = t
			return
		}
	}
	s.tickets = append([]domain.Ticket{t}, s.tickets...)
}

// RemoveTicket drops a ticket from the snapshot.
func (s *Store) RemoveTicket(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			s.tickets = append(s.tickets[:i], s.tickets[i+1:]...)
			return
		}
	}
}

// SpliceComment appends a comment to the cached ticket's thread.
func (s *Store) SpliceComment(ticketID int64, comment domain.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.tickets {
		if s.tickets[i].ID == ticketID {
			s.tickets[i].Comments = append(s.tickets[i].Comments, comment)
			return
		}
	}
}

// UpsertLicitacion splices a created or updated bid into the snapshot.
func (s *Store) UpsertLicitacion(l domain.Licitacion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.licitaciones {
		if s.licitaciones[i].ID == l.ID {
			s.licitaciones[i] = l
			return
		}
	}
	s.licitaciones = append([]domain.Licitacion{l}, s.licitaciones...)
}

// RemoveLicitacion drops a bid from the snapshot.
func (s *Store) RemoveLicitacion(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.licitaciones {
		if s.licitaciones[i].ID == id {
			s.licitaciones = append(s.licitaciones[:i], s.licitaciones[i+1:]...)
			return
		}
	}
}

// UpsertUser splices an operator account into the snapshot.
func (s *Store) UpsertUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return
		}
	}
	s.users = append(s.users, u)
}

// RemoveUser drops an operator account from the snapshot.
func (s *Store) RemoveUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

// AppendReporte records a freshly created snapshot.
func (s *Store) AppendReporte(r domain.Reporte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.reportes = append(s.reportes, r)
}
