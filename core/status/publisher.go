package status

import "github.com/tripathik9559/railops/core/model"

// Publisher pushes schedule updates to external consumers, such as the
// dashboard feed. Implementations must be safe for concurrent use.
type Publisher interface {
	// PublishScheduleUpdate sends the result of a completed solve.
	PublishScheduleUpdate(res model.ScheduleResult) error
	Close() error
}

// NopPublisher discards every update.
type NopPublisher struct{}

func (NopPublisher) PublishScheduleUpdate(model.ScheduleResult) error { return nil }
func (NopPublisher) Close() error                                     { return nil }
