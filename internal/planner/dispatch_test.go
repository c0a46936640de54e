package planner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/google/uuid"
)

func TestHTTPDispatcherSuccess(t *testing.T) {
	var got GenerationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"workflow_id":"wf-42"}`))
	}))
	defer srv.Close()

	req := &GenerationRequest{
		UserID:      uuid.New(),
		ScheduleID:  uuid.New(),
		Preferences: map[string]interface{}{"sessions_per_week": 3},
		CallbackURL: "http://api/api/webhooks/workout-plan",
	}
	ack, err := NewHTTPDispatcher(time.Second).Dispatch(context.Background(), srv.URL, req)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if ack.WorkflowID != "wf-42" {
		t.Errorf("workflow id = %q", ack.WorkflowID)
	}
	if got.ScheduleID != req.ScheduleID || got.CallbackURL != req.CallbackURL {
		t.Errorf("payload not forwarded: %+v", got)
	}
}

func TestHTTPDispatcherEmptyAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	ack, err := NewHTTPDispatcher(time.Second).Dispatch(context.Background(), srv.URL, &GenerationRequest{})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if ack.WorkflowID != "" {
		t.Errorf("workflow id = %q, want empty", ack.WorkflowID)
	}
}

func TestHTTPDispatcherFailures(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer failing.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	downURL := down.URL
	down.Close()

	cases := []struct {
		name    string
		url     string
		timeout time.Duration
	}{
		{"non-2xx", failing.URL, time.Second},
		{"timeout", slow.URL, 20 * time.Millisecond},
		{"connection refused", downURL, time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewHTTPDispatcher(tc.timeout).Dispatch(context.Background(), tc.url, &GenerationRequest{})
			if !errors.Is(err, apperr.ErrUpstream) {
				t.Fatalf("err = %v, want upstream failure", err)
			}
			if !errors.Is(err, ErrDispatch) {
				t.Errorf("err should wrap ErrDispatch")
			}
		})
	}
}
