// Package iocache persists plugin results and run history across invocations.
package iocache

import (
	"sync"

	"github.com/huangsam/visulog/internal/contract"
)

// CacheStoreManager manages the result and history store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	result       contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetResultStore returns the plugin result CacheStore.
func (mgr *CacheStoreManager) GetResultStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.result
}

// GetHistoryStore returns the run HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
