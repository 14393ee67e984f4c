package leaverequest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/businessregulatoryreviewagency/brra/internal/leaverequest"
	leaverequesterrors "github.com/businessregulatoryreviewagency/brra/internal/leaverequest/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveRequestService struct {
	createFn      func(ctx context.Context, actorID string, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	createLocalFn func(ctx context.Context, actorID string, req leaverequest.CreateLocalLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	decideFn      func(ctx context.Context, actorID, id string, stage leaverequest.Stage, decision, notes string) (leaverequest.LeaveRequestResponse, error)
	approveFn     func(ctx context.Context, actorID, id string, req leaverequest.ApproveLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	rejectFn      func(ctx context.Context, actorID, id string, req leaverequest.RejectLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	getByIDFn     func(ctx context.Context, actorID, id string) (leaverequest.LeaveRequestResponse, error)
	historyFn     func(ctx context.Context, actorID string) ([]leaverequest.LeaveRequestResponse, error)
	pendingForFn  func(ctx context.Context, actorID, stage string) ([]leaverequest.LeaveRequestResponse, error)
	summaryFn     func(ctx context.Context, actorID string) (leaverequest.LeaveSummaryResponse, error)
}

func (f *fakeLeaveRequestService) Create(ctx context.Context, actorID string, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.createFn(ctx, actorID, req)
}
func (f *fakeLeaveRequestService) CreateLocal(ctx context.Context, actorID string, req leaverequest.CreateLocalLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.createLocalFn(ctx, actorID, req)
}
func (f *fakeLeaveRequestService) Decide(ctx context.Context, actorID, id string, stage leaverequest.Stage, decision, notes string) (leaverequest.LeaveRequestResponse, error) {
	return f.decideFn(ctx, actorID, id, stage, decision, notes)
}
func (f *fakeLeaveRequestService) Approve(ctx context.Context, actorID, id string, req leaverequest.ApproveLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.approveFn(ctx, actorID, id, req)
}
func (f *fakeLeaveRequestService) Reject(ctx context.Context, actorID, id string, req leaverequest.RejectLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.rejectFn(ctx, actorID, id, req)
}
func (f *fakeLeaveRequestService) GetByID(ctx context.Context, actorID, id string) (leaverequest.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, actorID, id)
}
func (f *fakeLeaveRequestService) History(ctx context.Context, actorID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.historyFn(ctx, actorID)
}
func (f *fakeLeaveRequestService) PendingFor(ctx context.Context, actorID, stage string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.pendingForFn(ctx, actorID, stage)
}
func (f *fakeLeaveRequestService) Summary(ctx context.Context, actorID string) (leaverequest.LeaveSummaryResponse, error) {
	return f.summaryFn(ctx, actorID)
}

const createBody = `{
	"employee_data": {
		"full_name": "Mary Banda",
		"email": "mary.banda@example.org",
		"employee_number": "EMP-000042",
		"nrc_no": "123456/10/1",
		"department": "Registration",
		"position": "Registry Officer"
	},
	"leave_type": "Annual Leave",
	"start_date": "2025-06-02",
	"end_date": "2025-06-06",
	"address_on_leave": "Plot 12, Kabwata, Lusaka",
	"supervisor_id": "sup-1",
	"hr_id": "hr-1",
	"ed_id": "ed-1"
}`

func TestLeaveRequestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeLeaveRequestService{
			createFn: func(ctx context.Context, aid string, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, leaverequest.LeaveTypeAnnual, req.LeaveType)
				return leaverequest.LeaveRequestResponse{
					ID:            uuid.New().String(),
					Reference:     "LR-000001",
					RequesterID:   aid,
					LeaveType:     req.LeaveType,
					RequestedDays: 5,
					Status:        leaverequest.StatusPendingSupervisor,
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(createBody))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("actor_id", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var got leaverequest.LeaveRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "LR-000001", got.Reference)
		assert.Equal(t, 5, got.RequestedDays)
		assert.Equal(t, leaverequest.StatusPendingSupervisor, got.Status)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeLeaveRequestService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("actor_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
	})

	t.Run("negative service error stays opaque", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			createFn: func(ctx context.Context, actorID string, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				return leaverequest.LeaveRequestResponse{}, errors.New("create failed")
			},
		}
		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(createBody))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("actor_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})

	t.Run("negative duplicate period returns conflict", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			createFn: func(ctx context.Context, actorID string, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				return leaverequest.LeaveRequestResponse{}, leaverequesterrors.ErrDuplicateRequest
			},
		}
		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(createBody))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("actor_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveRequestHandler_Approve(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		requestID := uuid.New().String()

		svc := &fakeLeaveRequestService{
			approveFn: func(ctx context.Context, aid, id string, req leaverequest.ApproveLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, requestID, id)
				assert.Equal(t, "supervisor", req.Stage)
				return leaverequest.LeaveRequestResponse{
					ID:     id,
					Status: leaverequest.StatusPendingHR,
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/"+requestID+"/approve", strings.NewReader(`{"stage":"supervisor"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("actor_id", actorID)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative wrong stage returns conflict code", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			approveFn: func(ctx context.Context, actorID, id string, req leaverequest.ApproveLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				return leaverequest.LeaveRequestResponse{}, leaverequesterrors.ErrWrongStage
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/abc/approve", strings.NewReader(`{"stage":"ed"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		c.Set("actor_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "WRONG_STAGE", env.Error.Code)
	})

	t.Run("negative invalid stage fails binding", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeLeaveRequestService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/abc/approve", strings.NewReader(`{"stage":"manager"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		c.Set("actor_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveRequestHandler_Reject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			rejectFn: func(ctx context.Context, actorID, id string, req leaverequest.RejectLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, "Dates clash with the audit", req.Notes)
				return leaverequest.LeaveRequestResponse{
					ID:     id,
					Status: leaverequest.StatusRejected,
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/abc/reject", strings.NewReader(`{"stage":"hr","notes":"Dates clash with the audit"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		c.Set("actor_id", uuid.New().String())

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative notes are required at the edge", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeLeaveRequestService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/abc/reject", strings.NewReader(`{"stage":"hr"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		c.Set("actor_id", uuid.New().String())

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveRequestHandler_Pending(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success forwards the stage query", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeLeaveRequestService{
			pendingForFn: func(ctx context.Context, aid, stage string) ([]leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "hr", stage)
				return []leaverequest.LeaveRequestResponse{{Reference: "LR-000004"}}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests/pending?stage=hr", nil)
		c.Set("actor_id", actorID)

		h.Pending(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative unknown stage", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			pendingForFn: func(ctx context.Context, actorID, stage string) ([]leaverequest.LeaveRequestResponse, error) {
				return nil, leaverequesterrors.ErrInvalidStage
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests/pending?stage=director", nil)
		c.Set("actor_id", uuid.New().String())

		h.Pending(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveRequestHandler_Summary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeLeaveRequestService{
		summaryFn: func(ctx context.Context, actorID string) (leaverequest.LeaveSummaryResponse, error) {
			return leaverequest.LeaveSummaryResponse{Total: 4, Pending: 1, Approved: 2, Rejected: 1}, nil
		},
	}

	h := leaverequest.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests/summary", nil)
	c.Set("actor_id", uuid.New().String())

	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var got leaverequest.LeaveSummaryResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, int64(4), got.Total)
}
