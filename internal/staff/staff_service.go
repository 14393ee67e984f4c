package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/businessregulatoryreviewagency/brra/internal/shared/contextutil"
	"github.com/businessregulatoryreviewagency/brra/internal/shared/counter"
	stafferrors "github.com/businessregulatoryreviewagency/brra/internal/staff/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	RoleSupervisor = "supervisor"
	RoleHR         = "hr"
	RoleED         = "ed"
)

const ApproverOptionsKeyPrefix = "staff:approvers:"

const approverOptionsTTL = 1 * time.Hour

func GetApproverOptionsKey(role string) string {
	return ApproverOptionsKeyPrefix + role
}

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	GetAll(ctx context.Context) ([]StaffResponse, error)
	GetByID(ctx context.Context, id string) (StaffResponse, error)
	Update(ctx context.Context, id string, req UpdateStaffRequest) (StaffResponse, error)
	ApproverOptions(ctx context.Context, role string) ([]ApproverOption, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create staff member",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	var appointedAt *time.Time
	if req.DateOfAppointment != "" {
		t, err := time.Parse("2006-01-02", req.DateOfAppointment)
		if err != nil {
			return StaffResponse{}, stafferrors.ErrInvalidAppointmentDate
		}
		appointedAt = &t
	}

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "staff_number")
		if err != nil {
			s.logger.Error("create staff generate number failed", zap.String("request_id", rid), zap.Error(err))
			return StaffResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	m := &Staff{
		ID:             uuid.New(),
		FullName:       req.FullName,
		Email:          req.Email,
		EmployeeNumber: req.EmployeeNumber,
		NRCNo:          req.NRCNo,
		Department:     req.Department,
		Position:       req.Position,
		Grade:          req.Grade,
		Salary:         req.Salary,
		Station:        req.Station,
		Division:       req.Division,
		AppointedAt:    appointedAt,
		IsSupervisor:   req.IsSupervisor,
		IsHR:           req.IsHR,
		IsED:           req.IsED,
		IsAdmin:        req.IsAdmin,
		Active:         true,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("create staff persist failed", zap.String("request_id", rid), zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	s.invalidateApproverOptions(ctx)

	s.logger.Info("create staff success",
		zap.String("request_id", rid),
		zap.String("staff_id", m.ID.String()),
		zap.String("employee_number", m.EmployeeNumber),
	)
	return mapToResponse(*m), nil
}

func (s *service) GetAll(ctx context.Context) ([]StaffResponse, error) {
	members, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all staff failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(members), nil
}

func (s *service) GetByID(ctx context.Context, id string) (StaffResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*m), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateStaffRequest) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update staff member", zap.String("request_id", rid), zap.String("staff_id", id))

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	if req.FullName != nil {
		m.FullName = *req.FullName
	}
	if req.Department != nil {
		m.Department = *req.Department
	}
	if req.Position != nil {
		m.Position = *req.Position
	}
	if req.Grade != nil {
		m.Grade = *req.Grade
	}
	if req.Salary != nil {
		m.Salary = *req.Salary
	}
	if req.Station != nil {
		m.Station = *req.Station
	}
	if req.Division != nil {
		m.Division = *req.Division
	}
	if req.DateOfAppointment != nil {
		t, err := time.Parse("2006-01-02", *req.DateOfAppointment)
		if err != nil {
			return StaffResponse{}, stafferrors.ErrInvalidAppointmentDate
		}
		m.AppointedAt = &t
	}
	if req.IsSupervisor != nil {
		m.IsSupervisor = *req.IsSupervisor
	}
	if req.IsHR != nil {
		m.IsHR = *req.IsHR
	}
	if req.IsED != nil {
		m.IsED = *req.IsED
	}
	if req.IsAdmin != nil {
		m.IsAdmin = *req.IsAdmin
	}
	if req.Active != nil {
		m.Active = *req.Active
	}

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("update staff persist failed", zap.String("staff_id", id), zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	s.invalidateApproverOptions(ctx)

	s.logger.Info("update staff success", zap.String("request_id", rid), zap.String("staff_id", id))
	return mapToResponse(*m), nil
}

// ApproverOptions serves the approver pickers. The lists change rarely and get
// hit hard when the request form opens, so reads go through Redis with a
// singleflight guard in front of the database.
func (s *service) ApproverOptions(ctx context.Context, role string) ([]ApproverOption, error) {
	switch role {
	case RoleSupervisor, RoleHR, RoleED:
	default:
		return nil, stafferrors.ErrInvalidRole
	}

	cacheKey := GetApproverOptionsKey(role)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []ApproverOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		members, err := s.repo.FindActiveByRole(ctx, role)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]ApproverOption, len(members))
		for i, m := range members {
			resp[i] = ApproverOption{
				ID:       m.ID.String(),
				FullName: m.FullName,
				Position: m.Position,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, approverOptionsTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ApproverOption), nil
}

func (s *service) invalidateApproverOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	for _, role := range []string{RoleSupervisor, RoleHR, RoleED} {
		cacheKey := GetApproverOptionsKey(role)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("invalidate approver options cache failed",
				zap.String("key", cacheKey),
				zap.Error(err),
			)
		}
	}
}

func mapToResponse(m Staff) StaffResponse {
	var appointedAt *string
	if m.AppointedAt != nil {
		v := m.AppointedAt.Format("2006-01-02")
		appointedAt = &v
	}

	return StaffResponse{
		ID:                m.ID.String(),
		FullName:          m.FullName,
		Email:             m.Email,
		EmployeeNumber:    m.EmployeeNumber,
		NRCNo:             m.NRCNo,
		Department:        m.Department,
		Position:          m.Position,
		Grade:             m.Grade,
		Salary:            m.Salary,
		Station:           m.Station,
		Division:          m.Division,
		DateOfAppointment: appointedAt,
		IsSupervisor:      m.IsSupervisor,
		IsHR:              m.IsHR,
		IsED:              m.IsED,
		IsAdmin:           m.IsAdmin,
		Active:            m.Active,
		CreatedAt:         m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         m.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(members []Staff) []StaffResponse {
	resp := make([]StaffResponse, len(members))
	for i, m := range members {
		resp[i] = mapToResponse(m)
	}
	return resp
}
