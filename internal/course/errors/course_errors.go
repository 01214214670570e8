package courseerrors

import (
	"net/http"

	"github.com/pandiaraajan-hub/workerprolite/internal/shared/apperror"
)

var (
	ErrCourseNotFound = apperror.New(
		apperror.CodeNotFound,
		"Course not found",
		http.StatusNotFound,
	)
	ErrCourseNameExists = apperror.New(
		apperror.CodeConflict,
		"Course with this name already exists",
		http.StatusConflict,
	)
)
