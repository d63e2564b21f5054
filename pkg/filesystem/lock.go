package filesystem

import "sync"

// pathLocks serializes in-process writers of shared store documents (the
// alias store, project manifests). Two operations mutating the same path
// queue up instead of racing; different paths proceed independently.
// There is no cross-process locking.
var pathLocks sync.Map

// LockPath acquires the in-process write lock for a store path
func LockPath(path string) {
	mu, _ := pathLocks.LoadOrStore(path, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

// UnlockPath releases the in-process write lock for a store path
func UnlockPath(path string) {
	mu, ok := pathLocks.Load(path)
	if !ok {
		return
	}
	mu.(*sync.Mutex).Unlock()
}
