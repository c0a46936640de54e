package planner

import (
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusCompleted, true},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusFailed, true},
		{StatusCompleted, StatusCompleted, true},
		{StatusFailed, StatusCompleted, true},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusFailed, false},
		{StatusProcessing, StatusPending, false},
		{StatusFailed, StatusProcessing, false},
		{Status("bogus"), StatusCompleted, false},
	}

	for _, tc := range cases {
		err := Transition(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("%s -> %s: expected error", tc.from, tc.to)
			} else if !errors.Is(err, apperr.ErrConflict) {
				t.Errorf("%s -> %s: error kind = %s", tc.from, tc.to, apperr.Kind(err))
			}
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("done").Valid() {
		t.Error("unknown status reported valid")
	}
}
