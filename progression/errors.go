package progression

import (
	"github.com/gamehive/observer/ierrors"
)

var (
	// ErrInvalidPointsPerLevel is returned when a Level is configured with a non-positive amount of points per level.
	ErrInvalidPointsPerLevel = ierrors.New("points per level must be positive")
	// ErrInvalidExperienceAmount is returned when a non-positive amount of experience is gained.
	ErrInvalidExperienceAmount = ierrors.New("experience amount must be positive")
	// ErrExperienceOverflow is returned when a gain would overflow the accumulated experience.
	ErrExperienceOverflow = ierrors.New("experience overflow")
)
