package staff_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	counterMock "github.com/businessregulatoryreviewagency/brra/internal/shared/counter/mock"
	"github.com/businessregulatoryreviewagency/brra/internal/staff"
	stafferrors "github.com/businessregulatoryreviewagency/brra/internal/staff/errors"
	staffMock "github.com/businessregulatoryreviewagency/brra/internal/staff/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type staffServiceTestDeps struct {
	service   staff.Service
	repo      *staffMock.MockRepository
	counter   *counterMock.MockRepository
	redisMock redismock.ClientMock
}

func setupStaffServiceTest(t *testing.T) staffServiceTestDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := staffMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	rdb, redisMock := redismock.NewClientMock()

	svc := staff.NewService((*sql.DB)(nil), repo, counterRepo, rdb)

	return staffServiceTestDeps{
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
		redisMock: redisMock,
	}
}

func expectApproverCacheInvalidation(m redismock.ClientMock) {
	for _, role := range []string{staff.RoleSupervisor, staff.RoleHR, staff.RoleED} {
		m.ExpectDel(staff.GetApproverOptionsKey(role)).SetVal(1)
	}
}

func TestStaffService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - generates employee number", func(t *testing.T) {
		deps := setupStaffServiceTest(t)

		deps.counter.EXPECT().
			GetNextValue(gomock.Any(), "staff_number").
			Return(int64(12), nil)

		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *staff.Staff) error {
				assert.Equal(t, "EMP-000012", m.EmployeeNumber)
				assert.True(t, m.Active)
				return nil
			})

		expectApproverCacheInvalidation(deps.redisMock)

		resp, err := deps.service.Create(ctx, staff.CreateStaffRequest{
			FullName:     "Chanda Mwale",
			Email:        "chanda.mwale@example.org",
			IsSupervisor: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000012", resp.EmployeeNumber)
		assert.True(t, resp.IsSupervisor)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("success - keeps provided employee number", func(t *testing.T) {
		deps := setupStaffServiceTest(t)

		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *staff.Staff) error {
				assert.Equal(t, "EMP-000777", m.EmployeeNumber)
				return nil
			})

		expectApproverCacheInvalidation(deps.redisMock)

		resp, err := deps.service.Create(ctx, staff.CreateStaffRequest{
			FullName:       "Bwalya Phiri",
			Email:          "bwalya.phiri@example.org",
			EmployeeNumber: "EMP-000777",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000777", resp.EmployeeNumber)
	})

	t.Run("negative - malformed appointment date", func(t *testing.T) {
		deps := setupStaffServiceTest(t)

		_, err := deps.service.Create(ctx, staff.CreateStaffRequest{
			FullName:          "Bwalya Phiri",
			Email:             "bwalya.phiri@example.org",
			EmployeeNumber:    "EMP-000778",
			DateOfAppointment: "15/01/2020",
		})

		assert.ErrorIs(t, err, stafferrors.ErrInvalidAppointmentDate)
	})
}

func TestStaffService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success - patches pointer fields only", func(t *testing.T) {
		deps := setupStaffServiceTest(t)

		id := uuid.New()
		existing := &staff.Staff{
			ID:       id,
			FullName: "Chanda Mwale",
			Email:    "chanda.mwale@example.org",
			Position: "Registry Officer",
			Active:   true,
		}

		deps.repo.EXPECT().
			FindByID(gomock.Any(), id.String()).
			Return(existing, nil)

		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *staff.Staff) error {
				assert.Equal(t, "Senior Registry Officer", m.Position)
				assert.Equal(t, "Chanda Mwale", m.FullName)
				return nil
			})

		expectApproverCacheInvalidation(deps.redisMock)

		position := "Senior Registry Officer"
		resp, err := deps.service.Update(ctx, id.String(), staff.UpdateStaffRequest{
			Position: &position,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Senior Registry Officer", resp.Position)
	})

	t.Run("negative - not found", func(t *testing.T) {
		deps := setupStaffServiceTest(t)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), gomock.Any()).
			Return(nil, stafferrors.ErrStaffNotFound)

		name := "Someone Else"
		_, err := deps.service.Update(ctx, uuid.New().String(), staff.UpdateStaffRequest{
			FullName: &name,
		})

		assert.ErrorIs(t, err, stafferrors.ErrStaffNotFound)
	})
}

func TestStaffService_ApproverOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("success - cache miss hits the database and fills redis", func(t *testing.T) {
		deps := setupStaffServiceTest(t)

		cacheKey := staff.GetApproverOptionsKey(staff.RoleHR)
		deps.redisMock.ExpectGet(cacheKey).RedisNil()

		members := []staff.Staff{
			{ID: uuid.New(), FullName: "Agness Zulu", Position: "HR Officer"},
			{ID: uuid.New(), FullName: "Joseph Tembo", Position: "HR Manager"},
		}

		deps.repo.EXPECT().
			FindActiveByRole(gomock.Any(), staff.RoleHR).
			Return(members, nil)

		expected := []staff.ApproverOption{
			{ID: members[0].ID.String(), FullName: "Agness Zulu", Position: "HR Officer"},
			{ID: members[1].ID.String(), FullName: "Joseph Tembo", Position: "HR Manager"},
		}
		payload, err := json.Marshal(expected)
		assert.NoError(t, err)
		deps.redisMock.ExpectSet(cacheKey, payload, time.Hour).SetVal("OK")

		got, err := deps.service.ApproverOptions(ctx, staff.RoleHR)

		assert.NoError(t, err)
		assert.Equal(t, expected, got)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("success - served from cache without touching the repository", func(t *testing.T) {
		deps := setupStaffServiceTest(t)

		cached := []staff.ApproverOption{
			{ID: uuid.New().String(), FullName: "Agness Zulu", Position: "HR Officer"},
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)

		cacheKey := staff.GetApproverOptionsKey(staff.RoleHR)
		deps.redisMock.ExpectGet(cacheKey).SetVal(string(payload))

		got, err := deps.service.ApproverOptions(ctx, staff.RoleHR)

		assert.NoError(t, err)
		assert.Equal(t, cached, got)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("negative - unknown role", func(t *testing.T) {
		deps := setupStaffServiceTest(t)

		_, err := deps.service.ApproverOptions(ctx, "director")

		assert.ErrorIs(t, err, stafferrors.ErrInvalidRole)
	})
}
