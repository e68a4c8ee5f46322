package cart

import (
	"context"
	"sync"

	"github.com/tourbay/storefront/pkg/logger"
)

// Manager hands out one Store per user. Stores are created lazily on first
// touch and kept for the life of the process.
type Manager struct {
	remote          Remote
	repo            SnapshotRepo
	logg            *logger.Logger
	defaultCurrency string

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(remote Remote, repo SnapshotRepo, logg *logger.Logger, defaultCurrency string) *Manager {
	return &Manager{
		remote:          remote,
		repo:            repo,
		logg:            logg,
		defaultCurrency: defaultCurrency,
		stores:          map[string]*Store{},
	}
}

// StoreFor returns the user's store, restoring its persisted snapshot the
// first time the user shows up.
func (m *Manager) StoreFor(ctx context.Context, userID string) (*Store, error) {
	m.mu.Lock()
	if store, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return store, nil
	}
	m.mu.Unlock()

	store, err := NewStore(userID, m.remote, m.repo, m.logg, m.defaultCurrency)
	if err != nil {
		return nil, err
	}
	store.LoadSnapshot(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[userID]; ok {
		return existing, nil
	}
	m.stores[userID] = store
	return store, nil
}
