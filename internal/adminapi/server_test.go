package adminapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/antoniostano/turncore/internal/observability"
	"github.com/antoniostano/turncore/internal/workerchan"
)

type fakeSupervisor struct {
	status      workerchan.Status
	restartErr  error
	restartCalls int
	drainCalls  int
}

func (f *fakeSupervisor) Status() workerchan.Status { return f.status }

func (f *fakeSupervisor) Restart(ctx context.Context) error {
	f.restartCalls++
	return f.restartErr
}

func (f *fakeSupervisor) Drain(grace time.Duration) {
	f.drainCalls++
}

func TestHandleListWorkers(t *testing.T) {
	sup := &fakeSupervisor{status: workerchan.Status{ID: "emotion", State: workerchan.StateReady}}
	s := New(map[string]WorkerSupervisor{"emotion": sup}, nil, time.Second, false)

	req := httptest.NewRequest(http.MethodGet, "/workers", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var statuses []workerchan.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &statuses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(statuses) != 1 || statuses[0].ID != "emotion" {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
}

func TestHandleRestartWorker(t *testing.T) {
	sup := &fakeSupervisor{status: workerchan.Status{ID: "response"}}
	s := New(map[string]WorkerSupervisor{"response": sup}, nil, time.Second, false)

	req := httptest.NewRequest(http.MethodPost, "/workers/response/restart", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if sup.restartCalls != 1 {
		t.Fatalf("expected one restart call, got %d", sup.restartCalls)
	}
}

func TestHandleRestartWorker_NotFound(t *testing.T) {
	s := New(map[string]WorkerSupervisor{}, nil, time.Second, false)

	req := httptest.NewRequest(http.MethodPost, "/workers/missing/restart", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleDrain(t *testing.T) {
	sup := &fakeSupervisor{}
	s := New(map[string]WorkerSupervisor{"tts": sup}, nil, time.Second, false)

	req := httptest.NewRequest(http.MethodPost, "/drain", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if sup.drainCalls > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected drain to be called on the supervisor")
}

func TestHandleWorkerStages(t *testing.T) {
	metrics := observability.NewMetrics("turncore_test_adminapi")
	metrics.ObserveTurnStage("emotion", 120*time.Millisecond)
	metrics.ObserveSubstitution("response", "timeout")
	s := New(map[string]WorkerSupervisor{}, metrics, time.Second, false)

	req := httptest.NewRequest(http.MethodGet, "/workers/stages", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snapshot observability.TurnStageSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snapshot.Stages) != 1 || snapshot.Stages[0].Stage != "emotion" {
		t.Fatalf("unexpected stages: %+v", snapshot.Stages)
	}
	if len(snapshot.Indicators) != 1 || snapshot.Indicators[0].Name != "response:timeout" {
		t.Fatalf("unexpected indicators: %+v", snapshot.Indicators)
	}
}

func TestHandleWorkerStages_NoMetrics(t *testing.T) {
	s := New(map[string]WorkerSupervisor{}, nil, time.Second, false)

	req := httptest.NewRequest(http.MethodGet, "/workers/stages", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := New(map[string]WorkerSupervisor{}, nil, time.Second, false)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
