package conflicts

import (
	"encoding/json"
	"net/http"

	coremetrics "github.com/tripathik9559/railops/core/metrics"
	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/core/schedule"
)

// checkResponse wraps the audit outcome.
type checkResponse struct {
	Conflicts []model.Conflict `json:"conflicts"`
	Count     int              `json:"count"`
}

// NewCheckHandler returns an HTTP handler auditing an arbitrary schedule via
// POST /api/conflicts/check. The request body is a JSON array of audit
// entries (train_id, platform, start, duration). The optional recorder counts
// reported conflicts; it may be nil.
func NewCheckHandler(recorder coremetrics.ConflictRecorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var entries []schedule.AuditEntry
		if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		found := schedule.Audit(entries)
		if recorder != nil {
			_ = recorder.RecordConflicts(len(found))
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(checkResponse{Conflicts: found, Count: len(found)}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
