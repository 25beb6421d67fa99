//go:build !deadlock

// Package syncutils provides the lock types used across the module. Building with the "deadlock" tag swaps them for
// the instrumented locks of github.com/sasha-s/go-deadlock.
package syncutils

import (
	"sync"
)

// Mutex is the mutual exclusion lock used by the components.
type Mutex = sync.Mutex

// RWMutex is the reader/writer lock used by the components.
type RWMutex = sync.RWMutex

// DeadlockDetectionEnabled reports whether the instrumented locks are compiled in.
const DeadlockDetectionEnabled = false
