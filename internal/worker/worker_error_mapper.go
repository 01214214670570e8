package worker

import (
	"errors"
	"strings"

	workererrors "github.com/pandiaraajan-hub/workerprolite/internal/worker/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError translates store-level failures into AppErrors. It is
// exported because the import reconciliation path relies on distinguishing
// the duplicate Workers ID conflict from other failures.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workererrors.ErrWorkerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_workers_workers_id" {
			return workererrors.ErrWorkersIDExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_workers_workers_id") {
		return workererrors.ErrWorkersIDExists
	}

	return err
}
