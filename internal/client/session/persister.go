package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/ciphersafe/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/logging"
)

const persistTimeout = 5 * time.Second

// Persister mirrors a Store into the metadata repository.
type Persister struct {
	store  *Store
	repo   metadata.Repository
	logger logging.Logger

	hydrateMu sync.Mutex
	saveMu    sync.Mutex

	mu       sync.Mutex
	cancel   func()
	hydrated bool
}

func NewPersister(store *Store, repo metadata.Repository, logger logging.Logger) *Persister {
	return &Persister{store: store, repo: repo, logger: logger}
}

// Hydrate loads a stored credential into the store and then starts mirroring
// changes. A missing credential is not an error. Calling Hydrate twice is a
// no-op.
func (p *Persister) Hydrate(ctx context.Context) error {
	p.hydrateMu.Lock()
	defer p.hydrateMu.Unlock()
	if p.Hydrated() {
		return nil
	}

	token, err := p.repo.Get(ctx, metadata.KeySessionToken)
	switch {
	case errors.Is(err, common.ErrorNotFound):
	case err != nil:
		return fmt.Errorf("load session: %w", err)
	default:
		p.store.Set(token)
	}

	cancel := p.store.Subscribe(p.save)
	p.mu.Lock()
	p.cancel = cancel
	p.hydrated = true
	p.mu.Unlock()
	p.logger.Debug(ctx, "session hydrated", "present", token != "")
	return nil
}

// Hydrated reports whether Hydrate completed.
func (p *Persister) Hydrated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hydrated
}

// Stop detaches from the store.
func (p *Persister) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// save mirrors the store's current value rather than the notified one, so
// the last write always matches the store.
func (p *Persister) save(string) {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	credential, _ := p.store.Get()
	var err error
	if credential == "" {
		err = p.repo.Delete(ctx, metadata.KeySessionToken)
	} else {
		err = p.repo.Set(ctx, metadata.KeySessionToken, credential)
	}
	if err != nil {
		p.logger.Warn(ctx, "failed to persist session", "error", err)
	}
}
