package leaverequest

import (
	"errors"
	"strings"

	leaverequesterrors "github.com/businessregulatoryreviewagency/brra/internal/leaverequest/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaverequesterrors.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_requests_period" {
			return leaverequesterrors.ErrDuplicateRequest
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_requests_period") {
		return leaverequesterrors.ErrDuplicateRequest
	}

	return err
}
