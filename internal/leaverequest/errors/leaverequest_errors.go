package leaverequesterrors

import (
	"net/http"

	"github.com/businessregulatoryreviewagency/brra/internal/shared/apperror"
)

var (
	ErrInvalidRequesterID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid requester id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"selected period contains no working days",
		http.StatusBadRequest,
	)
	ErrMissingEmployeeNumber = apperror.New(
		apperror.CodeInvalidInput,
		"employee number is required on the profile snapshot",
		http.StatusBadRequest,
	)
	ErrMissingNRCNumber = apperror.New(
		apperror.CodeInvalidInput,
		"NRC number is required on the profile snapshot",
		http.StatusBadRequest,
	)
	ErrMissingApprover = apperror.New(
		apperror.CodeInvalidInput,
		"every approval stage needs an approver id",
		http.StatusBadRequest,
	)
	ErrApproversNotDistinct = apperror.New(
		apperror.CodeInvalidInput,
		"supervisor, HR and ED approvers must be distinct",
		http.StatusBadRequest,
	)
	ErrInvalidCommutedDays = apperror.New(
		apperror.CodeInvalidInput,
		"commuted_days must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidLastLeaveDate = apperror.New(
		apperror.CodeInvalidInput,
		"last_leave_date must not be after start_date",
		http.StatusBadRequest,
	)
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"rate_of_leave must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidStage = apperror.New(
		apperror.CodeInvalidInput,
		"unknown approval stage",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be Approved or Rejected",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a rejection reason is required",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrDuplicateRequest = apperror.New(
		apperror.CodeConflict,
		"a pending leave request for this period already exists",
		http.StatusConflict,
	)
	ErrUnauthorizedApprover = apperror.New(
		apperror.CodeUnauthorized,
		"actor is not the recorded approver for this stage",
		http.StatusForbidden,
	)
	ErrWrongStage = apperror.New(
		apperror.CodeWrongStage,
		"decision targets a stage that is not currently pending",
		http.StatusConflict,
	)
	ErrTerminalState = apperror.New(
		apperror.CodeTerminalState,
		"leave request is already approved or rejected",
		http.StatusConflict,
	)
	ErrStaleState = apperror.New(
		apperror.CodeStaleState,
		"leave request was modified concurrently, refetch and retry",
		http.StatusConflict,
	)
)
