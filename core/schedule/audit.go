package schedule

import (
	"github.com/google/uuid"

	"github.com/tripathik9559/railops/core/model"
)

// highSeverityOverlap is the overlap length, in minutes, from which a
// conflict is graded High instead of Medium.
const highSeverityOverlap = 10

// AuditEntry is one row of an arbitrary schedule handed to the auditor. It
// deliberately carries only what overlap detection needs, so schedules from
// any source can be checked.
type AuditEntry struct {
	TrainID  string `json:"train_id"`
	Platform int    `json:"platform"`
	Start    int    `json:"start"` // minutes, any consistent reference
	Duration int    `json:"duration"`
}

// Audit reports every pair of entries that shares a platform with
// intersecting [start, start+duration) windows. It is independent of how the
// schedule was produced and is the authoritative validity check.
func Audit(entries []AuditEntry) []model.Conflict {
	var conflicts []model.Conflict
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if a.Platform != b.Platform {
				continue
			}
			overlap := overlapMinutes(a.Start, a.Start+a.Duration, b.Start, b.Start+b.Duration)
			if overlap <= 0 {
				continue
			}
			severity := model.SeverityMedium
			if overlap >= highSeverityOverlap {
				severity = model.SeverityHigh
			}
			conflicts = append(conflicts, model.Conflict{
				ID:             uuid.NewString(),
				Trains:         [2]string{a.TrainID, b.TrainID},
				Platform:       a.Platform,
				OverlapMinutes: overlap,
				Severity:       severity,
			})
		}
	}
	return conflicts
}

// AuditAssignments adapts a produced schedule to audit entries using
// horizon-relative starts.
func AuditAssignments(assignments []model.ScheduleAssignment) []model.Conflict {
	entries := make([]AuditEntry, len(assignments))
	for i, a := range assignments {
		entries[i] = AuditEntry{TrainID: a.TrainID, Platform: a.Platform, Start: a.StartTime, Duration: a.Duration}
	}
	return Audit(entries)
}

func overlapMinutes(aStart, aEnd, bStart, bEnd int) int {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	return end - start
}
