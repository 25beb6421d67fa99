package syncutils

import (
	"sync"
)

// Counter is a concurrency-safe integer that allows waiting for its value to drop.
type Counter struct {
	value              int
	valueMutex         Mutex
	valueDecreasedCond *sync.Cond
}

// NewCounter creates a Counter starting at zero.
func NewCounter() (newCounter *Counter) {
	newCounter = new(Counter)
	newCounter.valueDecreasedCond = sync.NewCond(&newCounter.valueMutex)

	return newCounter
}

func (c *Counter) Increase() (newValue int) {
	return c.update(1)
}

func (c *Counter) Decrease() (newValue int) {
	return c.update(-1)
}

// WaitIsZero blocks until the value is zero or below.
func (c *Counter) WaitIsZero() {
	c.valueMutex.Lock()
	defer c.valueMutex.Unlock()

	for c.value > 0 {
		c.valueDecreasedCond.Wait()
	}
}

func (c *Counter) update(delta int) (newValue int) {
	c.valueMutex.Lock()
	c.value += delta
	newValue = c.value
	c.valueMutex.Unlock()

	if delta < 0 {
		c.valueDecreasedCond.Broadcast()
	}

	return newValue
}
