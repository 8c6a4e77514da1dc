package types

import "testing"

func TestNewArrivalStatusStartsAllPending(t *testing.T) {
	s := NewArrivalStatus(newID(t), newID(t))
	if s.Status != StatusWaitingArrival {
		t.Fatalf("status = %q, want %q", s.Status, StatusWaitingArrival)
	}
	if s.StatusApproval != ApprovalPending || s.StatusWeighing != WeighingPending || s.StatusQc != QcPending {
		t.Fatalf("sub-statuses not all pending: %+v", s)
	}
	if s.AllCompleted() {
		t.Fatal("fresh status reported all completed")
	}
}

func TestSubStatusesAreMonotonic(t *testing.T) {
	s := NewArrivalStatus(newID(t), newID(t))

	if err := s.CompleteWeighing(); err != nil {
		t.Fatalf("CompleteWeighing: %v", err)
	}
	if s.StatusWeighing != WeighingCompleted {
		t.Fatalf("statusWeighing = %q", s.StatusWeighing)
	}
	// Completing again is a no-op, not an error.
	if err := s.CompleteWeighing(); err != nil {
		t.Fatalf("re-complete weighing: %v", err)
	}

	if err := s.CompleteQc(); err != nil {
		t.Fatalf("CompleteQc: %v", err)
	}
	if err := s.CompleteApproval(StatusWaitingArrival); err != nil {
		t.Fatalf("CompleteApproval: %v", err)
	}
	if !s.AllCompleted() {
		t.Fatalf("expected terminal state, got %+v", s)
	}
}

func TestApprovalIndependentOfOtherSteps(t *testing.T) {
	s := NewArrivalStatus(newID(t), newID(t))
	if err := s.CompleteApproval(StatusWaitingArrival); err != nil {
		t.Fatalf("CompleteApproval: %v", err)
	}
	if s.StatusApproval != ApprovalCompleted {
		t.Fatalf("statusApproval = %q", s.StatusApproval)
	}
	if s.StatusWeighing != WeighingPending || s.StatusQc != QcPending {
		t.Fatalf("approval mutated unrelated sub-statuses: %+v", s)
	}
	if s.Status != StatusWaitingArrival {
		t.Fatalf("status = %q", s.Status)
	}
}

func TestCanAdvanceRejectsBackwardAndCrossTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{WeighingPending, WeighingCompleted, true},
		{WeighingCompleted, WeighingPending, false},
		{QcCompleted, QcPending, false},
		{ApprovalCompleted, ApprovalPending, false},
		{WeighingPending, QcCompleted, false},
		{"", WeighingCompleted, false},
	}
	for _, tc := range cases {
		if got := canAdvance(tc.from, tc.to); got != tc.want {
			t.Errorf("canAdvance(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidConditionCategory(t *testing.T) {
	if !ValidConditionCategory(ConditionWet) || !ValidConditionCategory(ConditionDry) {
		t.Fatal("canonical categories rejected")
	}
	if ValidConditionCategory("Damp") || ValidConditionCategory("") {
		t.Fatal("unknown category accepted")
	}
}
