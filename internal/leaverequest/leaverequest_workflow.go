package leaverequest

import "time"

const (
	StatusPendingSupervisor = "Pending Supervisor"
	StatusPendingHR         = "Pending HR"
	StatusPendingED         = "Pending ED"
	StatusApproved          = "Approved"
	StatusRejected          = "Rejected"
)

const (
	DecisionPending  = "Pending"
	DecisionApproved = "Approved"
	DecisionRejected = "Rejected"
)

// Stage is one approval checkpoint in a request's track.
type Stage string

const (
	StageSupervisor Stage = "supervisor"
	StageHR         Stage = "hr"
	StageED         Stage = "ed"
)

// stageOrder is the full annual track; the local track pre-satisfies the
// first two stages at creation so the gating rule stays uniform.
var stageOrder = []Stage{StageSupervisor, StageHR, StageED}

func ParseStage(s string) (Stage, bool) {
	switch Stage(s) {
	case StageSupervisor, StageHR, StageED:
		return Stage(s), true
	default:
		return "", false
	}
}

// DeriveStatus projects the overall status from the three stage decisions.
// It is the only way status is ever computed; clients never set it directly.
func DeriveStatus(supervisor, hr, ed string) string {
	if supervisor == DecisionRejected || hr == DecisionRejected || ed == DecisionRejected {
		return StatusRejected
	}
	if supervisor == DecisionPending {
		return StatusPendingSupervisor
	}
	if hr == DecisionPending {
		return StatusPendingHR
	}
	if ed == DecisionPending {
		return StatusPendingED
	}
	return StatusApproved
}

// CurrentStage returns the stage a status is waiting on; ok is false for
// terminal statuses.
func CurrentStage(status string) (Stage, bool) {
	switch status {
	case StatusPendingSupervisor:
		return StageSupervisor, true
	case StatusPendingHR:
		return StageHR, true
	case StatusPendingED:
		return StageED, true
	default:
		return "", false
	}
}

func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

func (l *LeaveRequest) StageApproverID(stage Stage) string {
	switch stage {
	case StageSupervisor:
		return l.SupervisorID
	case StageHR:
		return l.HRID
	default:
		return l.EDID
	}
}

func (l *LeaveRequest) StageDecision(stage Stage) string {
	switch stage {
	case StageSupervisor:
		return l.SupervisorDecision
	case StageHR:
		return l.HRDecision
	default:
		return l.EDDecision
	}
}

// EarlierStagesApproved is the gating predicate: a stage is actionable only
// once every stage before it in the track is Approved.
func (l *LeaveRequest) EarlierStagesApproved(stage Stage) bool {
	for _, s := range stageOrder {
		if s == stage {
			return true
		}
		if l.StageDecision(s) != DecisionApproved {
			return false
		}
	}
	return false
}

// applyStageDecision records a decision on the named stage and recomputes the
// derived fields. It mutates only the in-memory aggregate; persistence happens
// under the repository's optimistic guard.
func (l *LeaveRequest) applyStageDecision(stage Stage, decision string, notes string, at time.Time) {
	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	switch stage {
	case StageSupervisor:
		l.SupervisorDecision = decision
		l.SupervisorNotes = notesPtr
		l.SupervisorActionAt = &at
	case StageHR:
		l.HRDecision = decision
		l.HRNotes = notesPtr
		l.HRActionAt = &at
	case StageED:
		l.EDDecision = decision
		l.EDNotes = notesPtr
		l.EDActionAt = &at
	}

	l.Status = DeriveStatus(l.SupervisorDecision, l.HRDecision, l.EDDecision)
	l.UpdatedAt = at

	switch l.Status {
	case StatusApproved:
		// Full-approval-only: partial approval is not a supported path.
		days := l.RequestedDays
		l.ApprovedDays = &days
	case StatusRejected:
		reason := notes
		l.RejectionReason = &reason
	}
}
