package schedule

import (
	"testing"

	"github.com/tripathik9559/railops/core/model"
)

func TestAuditDetectsOverlap(t *testing.T) {
	entries := []AuditEntry{
		{TrainID: "A", Platform: 1, Start: 630, Duration: 10},
		{TrainID: "B", Platform: 1, Start: 635, Duration: 8},
	}
	conflicts := Audit(entries)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	c := conflicts[0]
	if c.OverlapMinutes != 5 {
		t.Fatalf("expected 5 min overlap, got %d", c.OverlapMinutes)
	}
	if c.Severity != model.SeverityMedium {
		t.Fatalf("expected medium severity, got %v", c.Severity)
	}
	if c.Trains != [2]string{"A", "B"} {
		t.Fatalf("unexpected train pair %v", c.Trains)
	}
	if c.ID == "" {
		t.Fatalf("conflict id must be set")
	}
}

func TestAuditHighSeverity(t *testing.T) {
	entries := []AuditEntry{
		{TrainID: "A", Platform: 2, Start: 600, Duration: 30},
		{TrainID: "B", Platform: 2, Start: 610, Duration: 30},
	}
	conflicts := Audit(entries)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].Severity != model.SeverityHigh {
		t.Fatalf("20 min overlap must be high severity, got %v", conflicts[0].Severity)
	}
}

func TestAuditIgnoresDistinctPlatforms(t *testing.T) {
	entries := []AuditEntry{
		{TrainID: "A", Platform: 1, Start: 600, Duration: 60},
		{TrainID: "B", Platform: 2, Start: 600, Duration: 60},
	}
	if conflicts := Audit(entries); len(conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %+v", conflicts)
	}
}

func TestAuditTouchingWindows(t *testing.T) {
	entries := []AuditEntry{
		{TrainID: "A", Platform: 1, Start: 600, Duration: 10},
		{TrainID: "B", Platform: 1, Start: 610, Duration: 10},
	}
	// Half-open windows: ending exactly when the next starts is not an
	// overlap.
	if conflicts := Audit(entries); len(conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %+v", conflicts)
	}
}

func TestAuditAssignments(t *testing.T) {
	assignments := []model.ScheduleAssignment{
		{TrainID: "A", Platform: 3, StartTime: 0, Duration: 20},
		{TrainID: "B", Platform: 3, StartTime: 15, Duration: 20},
		{TrainID: "C", Platform: 4, StartTime: 0, Duration: 20},
	}
	conflicts := AuditAssignments(assignments)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].Platform != 3 {
		t.Fatalf("expected conflict on platform 3, got %d", conflicts[0].Platform)
	}
}
