package vitality

import (
	"github.com/gamehive/observer/ierrors"
)

var (
	// ErrInvalidMax is returned when a Health is configured with a non-positive maximum.
	ErrInvalidMax = ierrors.New("maximum health must be positive")
	// ErrInvalidDrain is returned when a Health is configured with a non-positive drain per tick.
	ErrInvalidDrain = ierrors.New("health drain per tick must be positive")
)
