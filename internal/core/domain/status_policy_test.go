package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestAllowedNextStatuses(t *testing.T) {
	tests := []struct {
		current Status
		want    []Status
	}{
		{StatusPending, []Status{StatusReviewed, StatusContacted, StatusApproved, StatusRejected}},
		{StatusReviewed, []Status{StatusContacted, StatusApproved, StatusRejected}},
		{StatusContacted, []Status{StatusApproved, StatusRejected}},
		{StatusApproved, []Status{}},
		{StatusRejected, []Status{}},
		{Status("archived"), []Status{}},
		{Status(""), []Status{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			got := AllowedNextStatuses(tt.current)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AllowedNextStatuses(%q) = %v, want %v", tt.current, got, tt.want)
			}
		})
	}
}

func TestAllowedNextStatusesReturnsCopy(t *testing.T) {
	got := AllowedNextStatuses(StatusPending)
	got[0] = StatusRejected

	again := AllowedNextStatuses(StatusPending)
	if again[0] != StatusReviewed {
		t.Fatalf("transition table was mutated through returned slice: %v", again)
	}
}

func TestTerminalStatusesStayTerminal(t *testing.T) {
	for _, terminal := range []Status{StatusApproved, StatusRejected} {
		if !IsTerminal(terminal) {
			t.Errorf("IsTerminal(%q) = false", terminal)
		}
		for _, target := range AllStatuses {
			if CanTransition(terminal, target) {
				t.Errorf("CanTransition(%q, %q) = true, terminal status must not move", terminal, target)
			}
		}
	}
}

func TestCanTransitionHasNoBackEdges(t *testing.T) {
	for _, from := range AllStatuses {
		for _, to := range AllowedNextStatuses(from) {
			if CanTransition(to, from) {
				t.Errorf("back edge %s -> %s found", to, from)
			}
		}
	}
	if CanTransition(StatusPending, StatusPending) {
		t.Error("self transition must not be allowed")
	}
}

func TestErrInvalidTransition(t *testing.T) {
	err := error(ErrInvalidTransition(StatusApproved, StatusPending))

	if KindOf(err) != KindInvalidTransition {
		t.Fatalf("KindOf = %q, want %q", KindOf(err), KindInvalidTransition)
	}
	if msg := UserMessage(err, "fallback"); msg != MsgStatusUpdateFailed {
		t.Fatalf("UserMessage = %q, want %q", msg, MsgStatusUpdateFailed)
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As failed for *Error")
	}
}
