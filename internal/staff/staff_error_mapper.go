package staff

import (
	"errors"
	"strings"

	stafferrors "github.com/businessregulatoryreviewagency/brra/internal/staff/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stafferrors.ErrStaffNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_staff_email":
			return stafferrors.ErrDuplicateEmail
		case "uq_staff_employee_number":
			return stafferrors.ErrDuplicateEmployeeNumber
		}
	}

	// Driver wrappers do not always surface *pgconn.PgError.
	msg := err.Error()
	if strings.Contains(msg, "uq_staff_email") {
		return stafferrors.ErrDuplicateEmail
	}
	if strings.Contains(msg, "uq_staff_employee_number") {
		return stafferrors.ErrDuplicateEmployeeNumber
	}

	return err
}
