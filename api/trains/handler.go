package trains

import (
	"encoding/json"
	"net/http"

	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/core/trainstore"
)

// NewHandler returns an HTTP handler exposing the train roster.
//
//	GET    /api/trains        list all trains (?id= returns a single one)
//	POST   /api/trains        add a train (validated)
//	DELETE /api/trains?id=X   remove a train
func NewHandler(store *trainstore.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if id := r.URL.Query().Get("id"); id != "" {
				t, ok := store.Get(id)
				if !ok {
					http.Error(w, "train not found", http.StatusNotFound)
					return
				}
				writeJSON(w, t)
				return
			}
			writeJSON(w, store.Trains())
		case http.MethodPost:
			var t model.Train
			if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := store.Add(t); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusCreated)
			writeJSON(w, t)
		case http.MethodDelete:
			id := r.URL.Query().Get("id")
			if id == "" {
				http.Error(w, "id is required", http.StatusBadRequest)
				return
			}
			if !store.Remove(id) {
				http.Error(w, "train not found", http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
