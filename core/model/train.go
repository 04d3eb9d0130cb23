package model

import "fmt"

// TrainType classifies a train for scheduling purposes.
type TrainType int

const (
	TrainExpress TrainType = iota
	TrainPassenger
	TrainFreight
)

// String returns a human-readable representation of the train type.
func (t TrainType) String() string {
	switch t {
	case TrainExpress:
		return "Express"
	case TrainPassenger:
		return "Passenger"
	case TrainFreight:
		return "Freight"
	default:
		return "unknown"
	}
}

// TrainTypeFromString parses a train type name. The second return value
// reports whether the name was recognised.
func TrainTypeFromString(s string) (TrainType, bool) {
	switch s {
	case "Express":
		return TrainExpress, true
	case "Passenger":
		return TrainPassenger, true
	case "Freight":
		return TrainFreight, true
	default:
		return 0, false
	}
}

// MarshalText implements encoding.TextMarshaler so the enum serialises as
// its name rather than a bare integer.
func (t TrainType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TrainType) UnmarshalText(b []byte) error {
	v, ok := TrainTypeFromString(string(b))
	if !ok {
		return fmt.Errorf("unknown train type %q", string(b))
	}
	*t = v
	return nil
}

// Train describes one train competing for a platform slot. Instances are
// immutable for the duration of a solve; only the scenario modifier and the
// train store mutate them between solves.
type Train struct {
	ID            string    `json:"id"`
	Type          TrainType `json:"type"`
	Priority      int       `json:"priority"`       // 1..5, 1 is highest
	Duration      int       `json:"duration"`       // occupation time in minutes
	PreferredTime int       `json:"preferred_time"` // ideal start, minutes from midnight
}

// Validate checks a single train for structural soundness.
func (t Train) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("train id must not be empty")
	}
	if t.Duration <= 0 {
		return fmt.Errorf("train %s: duration must be positive", t.ID)
	}
	if t.Priority < 1 || t.Priority > 5 {
		return fmt.Errorf("train %s: priority %d outside 1..5", t.ID, t.Priority)
	}
	if t.PreferredTime < 0 {
		return fmt.Errorf("train %s: preferred time must not be negative", t.ID)
	}
	return nil
}

// DefaultPlatforms returns the standard six-platform station layout.
func DefaultPlatforms() []int { return []int{1, 2, 3, 4, 5, 6} }

// DefaultTrains returns the demo train set used when no trains are
// configured.
func DefaultTrains() []Train {
	return []Train{
		{ID: "T001", Type: TrainExpress, Priority: 1, Duration: 10, PreferredTime: 630},
		{ID: "T002", Type: TrainExpress, Priority: 2, Duration: 8, PreferredTime: 675},
		{ID: "T003", Type: TrainFreight, Priority: 3, Duration: 15, PreferredTime: 720},
		{ID: "T004", Type: TrainPassenger, Priority: 4, Duration: 12, PreferredTime: 645},
	}
}
