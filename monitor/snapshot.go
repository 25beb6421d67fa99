package monitor

import (
	"fmt"
	"strconv"
)

// Snapshot is the state of the observed components at the time of a report.
type Snapshot struct {
	Experience int
	Level      int
	Health     float64
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("Exp: %d,  Level: %d,  Health: %s", s.Experience, s.Level, strconv.FormatFloat(s.Health, 'f', -1, 64))
}
