package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/google/uuid"
)

// ErrDispatch tags every failure to hand a request to the workflow engine.
var ErrDispatch = apperr.Upstream("plan generation service unavailable")

// GenerationRequest is the body posted to the workflow engine.
type GenerationRequest struct {
	UserID      uuid.UUID   `json:"user_id"`
	ScheduleID  uuid.UUID   `json:"schedule_id"`
	UserData    interface{} `json:"user_data"`
	Preferences interface{} `json:"preferences"`
	CallbackURL string      `json:"callback_url"`
}

// Ack is the optional body of a successful dispatch.
type Ack struct {
	WorkflowID string `json:"workflow_id"`
}

// Dispatcher hands a generation request to an external workflow.
type Dispatcher interface {
	Dispatch(ctx context.Context, endpoint string, req *GenerationRequest) (*Ack, error)
}

// HTTPDispatcher posts requests as JSON. Any transport error, timeout or
// non-2xx status is reported as ErrDispatch.
type HTTPDispatcher struct {
	client *http.Client
}

func NewHTTPDispatcher(timeout time.Duration) *HTTPDispatcher {
	return &HTTPDispatcher{client: &http.Client{Timeout: timeout}}
}

func (d *HTTPDispatcher) Dispatch(ctx context.Context, endpoint string, req *GenerationRequest) (*Ack, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out", ErrDispatch)
		}
		return nil, fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: workflow returned %d", ErrDispatch, resp.StatusCode)
	}

	// The engine may ack with an empty or non-JSON body.
	var ack Ack
	_ = json.Unmarshal(body, &ack)
	return &ack, nil
}
