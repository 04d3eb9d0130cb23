package trains

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/core/trainstore"
)

func TestListTrains(t *testing.T) {
	h := NewHandler(trainstore.New(nil, nil))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/trains", nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []model.Train
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected demo trains, got %d", len(out))
	}
}

func TestGetSingleTrain(t *testing.T) {
	h := NewHandler(trainstore.New(nil, nil))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/trains?id=T001", nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out model.Train
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != "T001" {
		t.Fatalf("unexpected train %#v", out)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/trains?id=T999", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAddTrain(t *testing.T) {
	store := trainstore.New(nil, nil)
	h := NewHandler(store)
	body := `{"id":"T100","type":"Passenger","priority":3,"duration":20,"preferred_time":700}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/trains", strings.NewReader(body))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if _, ok := store.Get("T100"); !ok {
		t.Fatalf("train not stored")
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/trains", strings.NewReader(`{"id":"T101","priority":9,"duration":20}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid train must be rejected, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/trains", strings.NewReader("not json")))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad body must be rejected, got %d", rr.Code)
	}
}

func TestDeleteTrain(t *testing.T) {
	store := trainstore.New(nil, nil)
	h := NewHandler(store)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("DELETE", "/api/trains?id=T001", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status %d", rr.Code)
	}
	if _, ok := store.Get("T001"); ok {
		t.Fatalf("train still present")
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("DELETE", "/api/trains?id=T001", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("DELETE", "/api/trains", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing id must be rejected, got %d", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := NewHandler(trainstore.New(nil, nil))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("PUT", "/api/trains", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rr.Code)
	}
}
