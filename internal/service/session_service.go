// Package service coordinates desk workflows: session lifecycles, ticket and
// bid mutations flowing through the upstream API, notifications and metric
// snapshots.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ricardo-aragon/ticashop-desk/internal/auth"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
	"github.com/ricardo-aragon/ticashop-desk/internal/observability"
	"github.com/ricardo-aragon/ticashop-desk/internal/store"
	"github.com/ricardo-aragon/ticashop-desk/internal/upstream"
	apperrors "github.com/ricardo-aragon/ticashop-desk/pkg/util"
)

// Session bundles everything one authenticated request operates on: the
// stored credentials, the session's view state and a client carrying the
// upstream bearer token.
type Session struct {
	Auth   *auth.Session
	Store  *store.Store
	Client *upstream.Client
}

// LoginOutput is the grant returned to a successful login.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// SessionManager owns the session registry. Each login gets its own Store so
// two operators never share view state.
type SessionManager struct {
	client   *upstream.Client
	sessions *auth.SessionStore
	tokens   *auth.TokenManager
	logger   *zap.Logger
	metrics  *observability.Metrics

	mu     sync.Mutex
	stores map[string]*store.Store
}

// NewSessionManager constructs the manager around the base (tokenless)
// upstream client.
func NewSessionManager(client *upstream.Client, sessions *auth.SessionStore, tokens *auth.TokenManager, logger *zap.Logger, metrics *observability.Metrics) *SessionManager {
	return &SessionManager{
		client:   client,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
		metrics:  metrics,
		stores:   make(map[string]*store.Store),
	}
}

// Login exchanges credentials upstream, mints a desk session and kicks off
// the initial view-state load in the background.
func (m *SessionManager) Login(ctx context.Context, username, password string) (LoginOutput, error) {
	result, err := m.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return LoginOutput{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return LoginOutput{}, apperrors.NewUpstreamError(err)
	}

	session, err := m.sessions.Create(ctx, result.Token, result.User)
	if err != nil {
		return LoginOutput{}, apperrors.MapError(err)
	}

	token, expiresAt, err := m.tokens.GenerateToken(session.ID, result.User.Role)
	if err != nil {
		return LoginOutput{}, apperrors.MapError(err)
	}

	st := m.storeFor(session)
	go func() {
		loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = st.Load(loadCtx)
	}()

	m.logger.Info("operator logged in",
		zap.Int64("user_id", result.User.ID),
		zap.String("role", string(result.User.Role)),
	)
	return LoginOutput{Token: token, ExpiresAt: expiresAt, User: result.User}, nil
}

// Logout revokes the session and drops its view state.
func (m *SessionManager) Logout(ctx context.Context, sessionID string) error {
	m.dropStore(sessionID)
	return m.sessions.Delete(ctx, sessionID)
}

// Resolve builds the request-scoped session bundle, creating the view-state
// store on first use after a restart.
func (m *SessionManager) Resolve(authSession *auth.Session) *Session {
	return &Session{
		Auth:   authSession,
		Store:  m.storeFor(authSession),
		Client: m.client.WithToken(authSession.UpstreamToken),
	}
}

// Invalidate revokes a session whose upstream credentials stopped working.
func (m *SessionManager) Invalidate(ctx context.Context, sessionID string) {
	m.dropStore(sessionID)
	if err := m.sessions.Delete(ctx, sessionID); err != nil {
		m.logger.Warn("failed to revoke session", zap.Error(err))
	}
}

func (m *SessionManager) storeFor(authSession *auth.Session) *store.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stores[authSession.ID]; ok {
		return st
	}
	admin := authSession.User.Role == domain.RoleAdmin
	st := store.New(m.client.WithToken(authSession.UpstreamToken), admin, m.logger, m.metrics)
	m.stores[authSession.ID] = st
	return st
}

func (m *SessionManager) dropStore(sessionID string) {
	m.mu.Lock()
	st, ok := m.stores[sessionID]
	delete(m.stores, sessionID)
	m.mu.Unlock()
	if ok {
		st.Close()
	}
}
