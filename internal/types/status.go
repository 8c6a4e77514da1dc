package types

import "fmt"

// Workflow sub-status values. The string forms are part of the wire contract
// between client forms and server actions and must not change.
const (
	ApprovalPending   = "APPROVAL_PENDING"
	ApprovalCompleted = "APPROVAL_COMPLETED"
	WeighingPending   = "WEIGHING_PENDING"
	WeighingCompleted = "WEIGHING_COMPLETED"
	QcPending         = "QC_PENDING"
	QcCompleted       = "QC_COMPLETED"

	// Coarse position of an arrival in the yard queue.
	StatusWaitingArrival = "WAITING_ARRIVAL"
)

// Condition categories for an arrival item.
const (
	ConditionWet = "Wet"
	ConditionDry = "Dry"
)

// ValidConditionCategory reports whether cat is one of the two accepted
// condition categories.
func ValidConditionCategory(cat string) bool {
	return cat == ConditionWet || cat == ConditionDry
}

// Each sub-status is monotonic: it only ever moves PENDING -> COMPLETED.
// There is no reopen operation anywhere in the workflow.
func canAdvance(from, to string) bool {
	switch from {
	case ApprovalPending:
		return to == ApprovalCompleted
	case WeighingPending:
		return to == WeighingCompleted
	case QcPending:
		return to == QcCompleted
	case ApprovalCompleted, WeighingCompleted, QcCompleted:
		// Re-completing is a no-op, never an error.
		return to == from
	}
	return false
}

// CompleteWeighing marks the weighing step done. Completing an already
// completed step is a no-op.
func (s *ArrivalStatus) CompleteWeighing() error {
	if !canAdvance(s.StatusWeighing, WeighingCompleted) {
		return fmt.Errorf("invalid weighing status transition %q -> %q", s.StatusWeighing, WeighingCompleted)
	}
	s.StatusWeighing = WeighingCompleted
	return nil
}

// CompleteQc marks the quality-control step done.
func (s *ArrivalStatus) CompleteQc() error {
	if !canAdvance(s.StatusQc, QcCompleted) {
		return fmt.Errorf("invalid qc status transition %q -> %q", s.StatusQc, QcCompleted)
	}
	s.StatusQc = QcCompleted
	return nil
}

// CompleteApproval marks the approval step done and moves the coarse status
// to the given queue position. Approval is deliberately not gated on the
// weighing/QC steps; callers surface warnings instead (see ArrivalService).
func (s *ArrivalStatus) CompleteApproval(queueStatus string) error {
	if !canAdvance(s.StatusApproval, ApprovalCompleted) {
		return fmt.Errorf("invalid approval status transition %q -> %q", s.StatusApproval, ApprovalCompleted)
	}
	s.StatusApproval = ApprovalCompleted
	if queueStatus != "" {
		s.Status = queueStatus
	}
	return nil
}

// AllCompleted reports whether every sub-status has reached its terminal
// value. Purely observational; nothing gates on it.
func (s *ArrivalStatus) AllCompleted() bool {
	return s.StatusApproval == ApprovalCompleted &&
		s.StatusWeighing == WeighingCompleted &&
		s.StatusQc == QcCompleted
}
