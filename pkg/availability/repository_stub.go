package availability

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	settings map[string]Settings
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{settings: make(map[string]Settings)}
}

func (r *RepositoryStub) GetSettings(ctx context.Context, userId string) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	settings, ok := r.settings[userId]
	if !ok {
		return Settings{}, ErrSettingsNotFound
	}
	return settings, nil
}

func (r *RepositoryStub) StoreSettings(ctx context.Context, userId string, settings Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[userId] = settings
	return nil
}
