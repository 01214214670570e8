package certificationerrors

import (
	"net/http"

	"github.com/pandiaraajan-hub/workerprolite/internal/shared/apperror"
)

var (
	ErrCertificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Certification not found",
		http.StatusNotFound,
	)
	ErrCourseNotFound = apperror.New(
		apperror.CodeNotFound,
		"Course not found for this certification",
		http.StatusNotFound,
	)
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid worker id",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidExpiryWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Expiry window must be a positive number of days",
		http.StatusBadRequest,
	)
)
