// Package iocache is for caching I/O calls.
package iocache

import (
	"sync"

	"github.com/gitpulse/gitpulse/internal/contract"
)

// CacheStoreManager manages multiple CacheStore instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	activity     contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetActivityStore returns the activity CacheStore.
func (mgr *CacheStoreManager) GetActivityStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.activity
}
