package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

// postgres error classes we care about (lib/pq class codes)
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ErrorInfo is a classified error ready for the API surface.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// Classify maps a service-layer error to an HTTP status, API code and
// user-facing message. Transaction failures never leak internal detail.
func Classify(err error) ErrorInfo {
	switch {
	case errors.Is(err, ErrValidation):
		return ErrorInfo{http.StatusBadRequest, ValidationInvalidInput, err.Error()}
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return ErrorInfo{http.StatusNotFound, ResourceNotFound, err.Error()}
	case errors.Is(err, ErrStateConflict):
		return ErrorInfo{http.StatusConflict, ResourceConflict, err.Error()}
	case errors.Is(err, ErrDuplicate):
		return ErrorInfo{http.StatusConflict, ResourceAlreadyExists, err.Error()}
	case errors.Is(err, ErrTransactionFailed):
		return ErrorInfo{http.StatusInternalServerError, InternalDatabaseError,
			"the operation could not be completed, please try again later"}
	}

	if info, ok := classifyPostgres(err); ok {
		return info
	}

	return ErrorInfo{http.StatusInternalServerError, InternalServerError,
		"an internal error occurred, please try again later"}
}

// classifyPostgres translates raw postgres constraint violations that escaped
// the service layer into stable API codes.
func classifyPostgres(err error) (ErrorInfo, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ErrorInfo{}, false
	}

	switch string(pqErr.Code) {
	case pgUniqueViolation:
		return ErrorInfo{http.StatusConflict, ResourceAlreadyExists, "resource already exists"}, true
	case pgForeignKeyViolation:
		return ErrorInfo{http.StatusNotFound, ResourceNotFound, "referenced resource does not exist"}, true
	case pgNotNullViolation:
		return ErrorInfo{http.StatusBadRequest, ValidationRequired, "a required field is missing"}, true
	case pgCheckViolation:
		return ErrorInfo{http.StatusBadRequest, ValidationInvalidInput, "input value out of range"}, true
	}
	return ErrorInfo{}, false
}

// Respond classifies err and writes the matching error response. Internal
// failures are logged with full context before the sanitized reply goes out.
func Respond(c *gin.Context, err error, context string) {
	info := Classify(err)
	if info.Status >= http.StatusInternalServerError {
		logger.Error("Internal error during "+context, err, map[string]interface{}{
			"path": c.Request.URL.Path,
		})
	}
	RespondWithError(c, info.Status, info.Code, info.Message)
}
