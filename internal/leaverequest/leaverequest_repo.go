package leaverequest

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	FindPendingForApprover(ctx context.Context, actorID string, stage Stage) ([]LeaveRequest, error)
	ApplyDecision(ctx context.Context, l *LeaveRequest, expectedStatus string, stage Stage) (bool, error)
	CountByStatus(ctx context.Context, requesterID string) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}

// FindPendingForApprover returns requests actionable by the actor right now:
// the stage belongs to them, it is still Pending, and every earlier stage of
// the track is Approved. The predicate intentionally duplicates the decide
// gate so nothing shows up in a queue before it can be decided.
func (r *repository) FindPendingForApprover(ctx context.Context, actorID string, stage Stage) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})

	switch stage {
	case StageSupervisor:
		db = db.
			Where("supervisor_id = ?", actorID).
			Where("supervisor_decision = ?", DecisionPending)
	case StageHR:
		db = db.
			Where("hr_id = ?", actorID).
			Where("supervisor_decision = ?", DecisionApproved).
			Where("hr_decision = ?", DecisionPending)
	default:
		db = db.
			Where("ed_id = ?", actorID).
			Where("supervisor_decision = ?", DecisionApproved).
			Where("hr_decision = ?", DecisionApproved).
			Where("ed_decision = ?", DecisionPending)
	}

	var requests []LeaveRequest
	err := db.
		Order("created_at DESC").
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}

func stageColumns(stage Stage) (decision, notes, actionAt string) {
	switch stage {
	case StageSupervisor:
		return "supervisor_decision", "supervisor_notes", "supervisor_action_at"
	case StageHR:
		return "hr_decision", "hr_notes", "hr_action_at"
	default:
		return "ed_decision", "ed_notes", "ed_action_at"
	}
}

// ApplyDecision persists one stage decision under an optimistic guard: the
// UPDATE only matches while the aggregate still carries expectedStatus and the
// stage is still Pending. A concurrent writer leaves zero rows affected and
// the caller reports the conflict; two recorded decisions are impossible.
func (r *repository) ApplyDecision(ctx context.Context, l *LeaveRequest, expectedStatus string, stage Stage) (bool, error) {
	decisionCol, notesCol, actionAtCol := stageColumns(stage)

	updates := map[string]interface{}{
		decisionCol:  l.StageDecision(stage),
		notesCol:     stageNotes(l, stage),
		actionAtCol:  stageActionAt(l, stage),
		"status":     l.Status,
		"updated_at": l.UpdatedAt,
	}
	if l.ApprovedDays != nil {
		updates["approved_days"] = *l.ApprovedDays
	}
	if l.RejectionReason != nil {
		updates["rejection_reason"] = *l.RejectionReason
	}

	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", l.ID).
		Where("status = ?", expectedStatus).
		Where(decisionCol+" = ?", DecisionPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func stageNotes(l *LeaveRequest, stage Stage) *string {
	switch stage {
	case StageSupervisor:
		return l.SupervisorNotes
	case StageHR:
		return l.HRNotes
	default:
		return l.EDNotes
	}
}

func stageActionAt(l *LeaveRequest, stage Stage) interface{} {
	switch stage {
	case StageSupervisor:
		return l.SupervisorActionAt
	case StageHR:
		return l.HRActionAt
	default:
		return l.EDActionAt
	}
}

func (r *repository) CountByStatus(ctx context.Context, requesterID string) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("status, COUNT(*) AS count").
		Where("requester_id = ?", requesterID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
