package schedules

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/core/schedule"
	"github.com/tripathik9559/railops/core/schedule/history"
	"github.com/tripathik9559/railops/core/trainstore"
)

// NewOptimizeHandler returns an HTTP handler running a solve on the current
// station snapshot via POST /api/schedule/optimize.
//
// Query parameters:
//
//	engine   "cpsat" (default, with automatic fallback) or "greedy"
//	scenario "weather", "maintenance" or "peak_hours"; applied to the
//	         snapshot for this solve only
func NewOptimizeHandler(planner *schedule.Planner, store *trainstore.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		trains, platforms := store.Snapshot()
		engine := r.URL.Query().Get("engine")
		scenario := schedule.ScenarioFromString(r.URL.Query().Get("scenario"))

		var (
			res *model.ScheduleResult
			err error
		)
		switch engine {
		case schedule.EngineGreedy:
			trains, platforms = schedule.ApplyScenario(scenario, trains, platforms)
			res, err = planner.SolveHeuristic(r.Context(), trains, platforms)
		case "", schedule.EngineCPSAT:
			res, err = planner.SolveScenario(r.Context(), scenario, trains, platforms)
		default:
			http.Error(w, "unknown engine "+engine, http.StatusBadRequest)
			return
		}
		if err != nil {
			var invalid *schedule.InvalidInputError
			if errors.As(err, &invalid) {
				http.Error(w, invalid.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		store.SetLastResult(res)
		writeJSON(w, res)
	})
}

// NewCurrentHandler returns an HTTP handler exposing the latest solve result
// via GET /api/schedule/current.
func NewCurrentHandler(store *trainstore.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		res, ok := store.LastResult()
		if !ok {
			http.Error(w, "no schedule produced yet", http.StatusNotFound)
			return
		}
		writeJSON(w, res)
	})
}

// NewHistoryHandler returns an HTTP handler querying past solves via
// GET /api/schedule/history. Optional filters: start, end (RFC3339) and
// status (optimal|fallback).
func NewHistoryHandler(store history.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := history.Query{Status: r.URL.Query().Get("status")}
		if s := r.URL.Query().Get("start"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.Start = t
			}
		}
		if s := r.URL.Query().Get("end"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.End = t
			}
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, records)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
