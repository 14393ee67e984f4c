package stafferrors

import (
	"net/http"

	"github.com/businessregulatoryreviewagency/brra/internal/shared/apperror"
)

var (
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"staff member not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"a staff member with this email already exists",
		http.StatusConflict,
	)
	ErrDuplicateEmployeeNumber = apperror.New(
		apperror.CodeConflict,
		"a staff member with this employee number already exists",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of supervisor, hr, ed",
		http.StatusBadRequest,
	)
	ErrInvalidAppointmentDate = apperror.New(
		apperror.CodeInvalidInput,
		"date_of_appointment must be a YYYY-MM-DD date",
		http.StatusBadRequest,
	)
)
