package service

import "sync"

// keyedMutex provides per-key mutual exclusion. The backup-then-mutate
// sequence for a given file name is a critical section: without it two
// concurrent uploads to the same slot could interleave and leave a backup
// that matches neither prior version.
//
// Locks are never evicted; the key space is bounded by (person, type) pairs
// actually touched, which is small for this workload.
type keyedMutex struct {
	locks sync.Map // string -> *sync.Mutex
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	v, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// LockPair acquires the mutexes for two keys in lexical order so that
// concurrent pairings of the same keys cannot deadlock. The returned
// function releases both.
func (k *keyedMutex) LockPair(a, b string) func() {
	if a == b {
		return k.Lock(a)
	}
	if b < a {
		a, b = b, a
	}
	unlockA := k.Lock(a)
	unlockB := k.Lock(b)
	return func() {
		unlockB()
		unlockA()
	}
}
