package history

import (
	"context"
	"fmt"
	"time"

	"github.com/tripathik9559/railops/core/model"
)

// Record captures one solve invocation and its outcome.
type Record struct {
	Timestamp   time.Time                  `json:"timestamp"`
	RunID       string                     `json:"run_id"`
	Status      model.SolveStatus          `json:"status"`
	Engine      string                     `json:"engine"`
	Scenario    string                     `json:"scenario,omitempty"`
	Assignments []model.ScheduleAssignment `json:"assignments"`
	Metrics     model.Metrics              `json:"metrics"`
	Error       string                     `json:"error,omitempty"`
}

// Query defines filters for retrieving records.
type Query struct {
	Start  time.Time
	End    time.Time
	Status string // "optimal", "fallback" or empty for all
}

// matches reports whether the record passes all query filters.
func (q Query) matches(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Status != "" && r.Status.String() != q.Status {
		return false
	}
	return true
}

// Store persists solve records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// Config selects and configures the history backend.
type Config struct {
	// Backend selects the store type: "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "solves.log"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// New opens the store described by the configuration.
func New(cfg Config) (Store, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return NewJSONLStore(cfg.Path)
	}
}
