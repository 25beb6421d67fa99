//go:build deadlock

package syncutils

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

type Mutex = deadlock.Mutex
type RWMutex = deadlock.RWMutex

const DeadlockDetectionEnabled = true

func init() {
	// tick handlers hold a component lock for microseconds, anything this long is a stuck scene
	deadlock.Opts.DeadlockTimeout = 20 * time.Second
}
