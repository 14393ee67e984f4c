package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/businessregulatoryreviewagency/brra/internal/accrual"
	"github.com/businessregulatoryreviewagency/brra/internal/calendar"
	"github.com/businessregulatoryreviewagency/brra/internal/events"
	leaverequesterrors "github.com/businessregulatoryreviewagency/brra/internal/leaverequest/errors"
	"github.com/businessregulatoryreviewagency/brra/internal/messaging/kafka"
	"github.com/businessregulatoryreviewagency/brra/internal/shared/contextutil"
	"github.com/businessregulatoryreviewagency/brra/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	LeaveTypeAnnual        = "Annual Leave"
	LeaveTypeSick          = "Sick Leave"
	LeaveTypeMaternity     = "Maternity Leave"
	LeaveTypePaternity     = "Paternity Leave"
	LeaveTypeCompassionate = "Compassionate Leave"
	LeaveTypeStudy         = "Study Leave"
	LeaveTypeCommutation   = "Commutation of Leave"
	LeaveTypeLocal         = "Local Leave"
)

// annualTrackTypes pass through the full Supervisor -> HR -> ED chain.
var annualTrackTypes = map[string]struct{}{
	LeaveTypeAnnual:        {},
	LeaveTypeSick:          {},
	LeaveTypeMaternity:     {},
	LeaveTypePaternity:     {},
	LeaveTypeCompassionate: {},
	LeaveTypeStudy:         {},
	LeaveTypeCommutation:   {},
}

const referenceCounterType = "leave_request"

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveRequestResponse, error)
	CreateLocal(ctx context.Context, actorID string, req CreateLocalLeaveRequest) (LeaveRequestResponse, error)
	Decide(ctx context.Context, actorID, id string, stage Stage, decision, notes string) (LeaveRequestResponse, error)
	Approve(ctx context.Context, actorID, id string, req ApproveLeaveRequest) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actorID, id string, req RejectLeaveRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, actorID, id string) (LeaveRequestResponse, error)
	History(ctx context.Context, actorID string) ([]LeaveRequestResponse, error)
	PendingFor(ctx context.Context, actorID, stage string) ([]LeaveRequestResponse, error)
	Summary(ctx context.Context, actorID string) (LeaveSummaryResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	cal     *calendar.Engine
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, cal *calendar.Engine, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counterRepo, nil, cal, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	cal *calendar.Engine,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		cal:     cal,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	requesterUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequesterID
	}
	if _, ok := annualTrackTypes[req.LeaveType]; !ok {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidLeaveType
	}
	if req.Employee.EmployeeNumber == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrMissingEmployeeNumber
	}
	if req.Employee.NRCNo == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrMissingNRCNumber
	}
	if req.SupervisorID == "" || req.HRID == "" || req.EDID == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrMissingApprover
	}
	if req.SupervisorID == req.HRID || req.HRID == req.EDID || req.SupervisorID == req.EDID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrApproversNotDistinct
	}

	startDate, endDate, workingDays, err := s.validatePeriod(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create leave request period invalid", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	commutedDays := 0
	if req.LeaveType == LeaveTypeCommutation {
		if req.CommutedDays < 0 {
			return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidCommutedDays
		}
		commutedDays = req.CommutedDays
	}

	l := &LeaveRequest{
		ID:                 uuid.New(),
		RequesterID:        requesterUUID,
		Employee:           req.Employee,
		LeaveType:          req.LeaveType,
		StartDate:          startDate,
		EndDate:            endDate,
		RequestedDays:      workingDays,
		CommutedDays:       commutedDays,
		AddressOnLeave:     req.AddressOnLeave,
		SupervisorID:       req.SupervisorID,
		SupervisorName:     req.SupervisorName,
		SupervisorDecision: DecisionPending,
		HRID:               req.HRID,
		HRName:             req.HRName,
		HRDecision:         DecisionPending,
		EDID:               req.EDID,
		EDName:             req.EDName,
		EDDecision:         DecisionPending,
		Status:             StatusPendingSupervisor,
	}

	return s.persistNew(ctx, rid, l)
}

func (s *service) CreateLocal(ctx context.Context, actorID string, req CreateLocalLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create local leave request",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	requesterUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequesterID
	}
	if req.Employee.EmployeeNumber == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrMissingEmployeeNumber
	}
	if req.EDID == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrMissingApprover
	}

	startDate, endDate, workingDays, err := s.validatePeriod(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create local leave request period invalid", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	lastLeaveDate, err := parseDate(req.LastLeaveDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	months := calendar.MonthsBetween(lastLeaveDate, startDate)
	if months < 0 {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidLastLeaveDate
	}

	rate := req.RateOfLeave
	if rate == 0 {
		rate = accrual.DefaultRate
	}
	if rate < 0 {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRate
	}

	submittedAt := time.Now().UTC()
	l := &LeaveRequest{
		ID:             uuid.New(),
		RequesterID:    requesterUUID,
		Employee:       req.Employee,
		LeaveType:      LeaveTypeLocal,
		StartDate:      startDate,
		EndDate:        endDate,
		RequestedDays:  workingDays,
		AddressOnLeave: req.AddressOnLeave,

		Station:              req.Station,
		Division:             req.Division,
		LastLeaveDate:        &lastLeaveDate,
		MonthsSinceLastLeave: months,
		RateOfLeave:          rate,
		AccruedLeaveDays:     accrual.Days(months, rate),

		// Supervisor and HR are auto-satisfied on the local track so the
		// gating predicate stays uniform across tracks.
		SupervisorDecision: DecisionApproved,
		SupervisorActionAt: &submittedAt,
		HRDecision:         DecisionApproved,
		HRActionAt:         &submittedAt,
		EDID:               req.EDID,
		EDName:             req.EDName,
		EDDecision:         DecisionPending,
		Status:             StatusPendingED,
	}

	return s.persistNew(ctx, rid, l)
}

func (s *service) persistNew(ctx context.Context, rid string, l *LeaveRequest) (LeaveRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, referenceCounterType)
	if err != nil {
		s.logger.Error("create leave request draw reference failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	l.Reference = fmt.Sprintf("LR-%06d", nextVal)

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave request persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.LeaveRequestCreatedEvent{
			EventType:   "leave_request_created",
			RequestID:   rid,
			LeaveID:     l.ID.String(),
			Reference:   l.Reference,
			RequesterID: l.RequesterID.String(),
			LeaveType:   l.LeaveType,
			Status:      l.Status,
			OccurredAt:  time.Now().UTC(),
		}
		if err := s.queueOutboxEvent(ctx, tx, l, event.EventType, event); err != nil {
			s.logger.Error("create leave request outbox persist failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("create leave request success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("reference", l.Reference),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string, req ApproveLeaveRequest) (LeaveRequestResponse, error) {
	stage, ok := ParseStage(req.Stage)
	if !ok {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidStage
	}
	return s.Decide(ctx, actorID, id, stage, DecisionApproved, req.Notes)
}

func (s *service) Reject(ctx context.Context, actorID, id string, req RejectLeaveRequest) (LeaveRequestResponse, error) {
	stage, ok := ParseStage(req.Stage)
	if !ok {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidStage
	}
	return s.Decide(ctx, actorID, id, stage, DecisionRejected, req.Notes)
}

// Decide applies one approver decision to one stage. The gate runs against
// the freshly loaded aggregate and the write is guarded by the repository's
// compare-and-swap, so a racing decision on the same stage gets a stale-state
// failure instead of a second recorded decision.
func (s *service) Decide(ctx context.Context, actorID, id string, stage Stage, decision, notes string) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave request",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("stage", string(stage)),
		zap.String("decision", decision),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
	}
	if decision != DecisionApproved && decision != DecisionRejected {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDecision
	}
	notes = strings.TrimSpace(notes)
	if decision == DecisionRejected && notes == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRejectionReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if IsTerminal(l.Status) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrTerminalState
	}
	current, _ := CurrentStage(l.Status)
	if stage != current {
		s.logger.Warn("decide leave request wrong stage",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
			zap.String("stage", string(stage)),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrWrongStage
	}
	if l.StageApproverID(stage) != actorID {
		s.logger.Warn("decide leave request approver mismatch",
			zap.String("leave_id", id),
			zap.String("stage", string(stage)),
			zap.String("actor_id", actorID),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrUnauthorizedApprover
	}

	expectedStatus := l.Status
	l.applyStageDecision(stage, decision, notes, time.Now().UTC())

	applied, err := qtx.ApplyDecision(ctx, l, expectedStatus, stage)
	if err != nil {
		s.logger.Error("decide leave request persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	if !applied {
		s.logger.Warn("decide leave request lost optimistic race",
			zap.String("leave_id", id),
			zap.String("stage", string(stage)),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrStaleState
	}

	if s.outbox != nil {
		event := events.LeaveRequestDecidedEvent{
			EventType:  "leave_request_decided",
			RequestID:  rid,
			LeaveID:    l.ID.String(),
			Reference:  l.Reference,
			Stage:      string(stage),
			Decision:   decision,
			ActorID:    actorID,
			Status:     l.Status,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.queueOutboxEvent(ctx, tx, l, event.EventType, event); err != nil {
			s.logger.Error("decide leave request outbox persist failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave request commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("decide leave request success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("stage", string(stage)),
		zap.String("decision", decision),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string) (LeaveRequestResponse, error) {
	// A malformed id cannot name a request; it must not reach the uuid-typed
	// column as a driver error.
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	// Visible to the requester and to the recorded approvers only.
	if l.RequesterID.String() != actorID &&
		l.SupervisorID != actorID && l.HRID != actorID && l.EDID != actorID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
	}

	return mapToResponse(*l), nil
}

func (s *service) History(ctx context.Context, actorID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaverequesterrors.ErrInvalidRequesterID
	}
	requests, err := s.repo.FindByRequester(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) PendingFor(ctx context.Context, actorID, stage string) ([]LeaveRequestResponse, error) {
	parsed, ok := ParseStage(stage)
	if !ok {
		return nil, leaverequesterrors.ErrInvalidStage
	}
	requests, err := s.repo.FindPendingForApprover(ctx, actorID, parsed)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) Summary(ctx context.Context, actorID string) (LeaveSummaryResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveSummaryResponse{}, leaverequesterrors.ErrInvalidRequesterID
	}
	counts, err := s.repo.CountByStatus(ctx, actorID)
	if err != nil {
		return LeaveSummaryResponse{}, err
	}

	var summary LeaveSummaryResponse
	for status, n := range counts {
		summary.Total += n
		switch status {
		case StatusApproved:
			summary.Approved += n
		case StatusRejected:
			summary.Rejected += n
		default:
			summary.Pending += n
		}
	}
	return summary, nil
}

func (s *service) validatePeriod(start, end string) (time.Time, time.Time, int, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, 0, leaverequesterrors.ErrInvalidDateRange
	}

	workingDays := s.cal.WorkingDays(startDate, endDate)
	if workingDays == 0 {
		// A period of only weekends and holidays signals a mis-picked range.
		return time.Time{}, time.Time{}, 0, leaverequesterrors.ErrNoWorkingDays
	}
	return startDate, endDate, workingDays, nil
}

func (s *service) queueOutboxEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format("2006-01-02")
	return &v
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:             l.ID.String(),
		Reference:      l.Reference,
		RequesterID:    l.RequesterID.String(),
		Employee:       l.Employee,
		LeaveType:      l.LeaveType,
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		RequestedDays:  l.RequestedDays,
		CommutedDays:   l.CommutedDays,
		AddressOnLeave: l.AddressOnLeave,

		Station:              l.Station,
		Division:             l.Division,
		LastLeaveDate:        formatDatePtr(l.LastLeaveDate),
		MonthsSinceLastLeave: l.MonthsSinceLastLeave,
		RateOfLeave:          l.RateOfLeave,
		AccruedLeaveDays:     l.AccruedLeaveDays,

		Supervisor: StageResponse{
			ApproverID:   l.SupervisorID,
			ApproverName: l.SupervisorName,
			Decision:     l.SupervisorDecision,
			Notes:        l.SupervisorNotes,
			ActionAt:     formatTimePtr(l.SupervisorActionAt),
		},
		HR: StageResponse{
			ApproverID:   l.HRID,
			ApproverName: l.HRName,
			Decision:     l.HRDecision,
			Notes:        l.HRNotes,
			ActionAt:     formatTimePtr(l.HRActionAt),
		},
		ED: StageResponse{
			ApproverID:   l.EDID,
			ApproverName: l.EDName,
			Decision:     l.EDDecision,
			Notes:        l.EDNotes,
			ActionAt:     formatTimePtr(l.EDActionAt),
		},

		Status:          l.Status,
		ApprovedDays:    l.ApprovedDays,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       l.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
