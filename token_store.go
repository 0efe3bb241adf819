package storefront

import (
	"context"
	"database/sql"
	stderrors "errors"
	"sync"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultTokenScope models a single browser profile. Hosts embedding more
// than one storefront instance can scope tokens per instance.
const DefaultTokenScope = "default"

var _ TokenStore = (*MemoryTokenStore)(nil)
var _ TokenStore = (*BunTokenStore)(nil)

// MemoryTokenStore keeps the bearer token for the lifetime of the process,
// the tab-scoped storage mode.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Put(_ context.Context, token string) error {
	if token == "" {
		return errors.New("token must not be empty", errors.CategoryValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// BunTokenStore persists the bearer token in local SQLite storage so the
// session survives restarts, the way a browser keeps localStorage.
type BunTokenStore struct {
	db    *bun.DB
	scope string
}

type BunTokenStoreOption func(*BunTokenStore)

// WithTokenScope overrides the storage scope for multi-profile hosts.
func WithTokenScope(scope string) BunTokenStoreOption {
	return func(s *BunTokenStore) {
		if scope != "" {
			s.scope = scope
		}
	}
}

func NewBunTokenStore(db *bun.DB, opts ...BunTokenStoreOption) *BunTokenStore {
	s := &BunTokenStore{
		db:    db,
		scope: DefaultTokenScope,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *BunTokenStore) Get(ctx context.Context) (string, error) {
	record := &TokenRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.scope = ?", s.scope).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to read token")
	}

	return record.Token, nil
}

func (s *BunTokenStore) Put(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token must not be empty", errors.CategoryValidation)
	}

	record := &TokenRecord{
		ID:    uuid.New(),
		Scope: s.scope,
		Token: token,
	}

	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (scope) DO UPDATE").
		Set("token = EXCLUDED.token").
		Set("updated_at = CURRENT_TIMESTAMP").
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to store token")
	}

	return nil
}

func (s *BunTokenStore) Clear(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*TokenRecord)(nil)).
		Where("scope = ?", s.scope).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to clear token")
	}

	return nil
}

// CreateLocalTables creates the client-side persistence tables. Safe to call
// on every startup.
func CreateLocalTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*TokenRecord)(nil),
		(*CartLineRecord)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create local tables")
		}
	}

	return nil
}
