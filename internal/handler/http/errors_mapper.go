package http

import (
	"errors"
	"net/http"

	"github.com/marketforge/marketsync/internal/service"
	"github.com/marketforge/marketsync/internal/store"
	"github.com/marketforge/marketsync/internal/utils"
	"github.com/marketforge/marketsync/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:         http.StatusBadRequest,
	service.ErrWrongPassword:               http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid:     http.StatusUnauthorized,
	service.ErrTokenCreationFailed:         http.StatusInternalServerError,
	service.ErrValidationUnknownCollection: http.StatusBadRequest,
	service.ErrValidationNoResourceID:      http.StatusUnprocessableEntity,
	service.ErrValidationNegativeQuantity:  http.StatusUnprocessableEntity,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrEntryNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError emits the uniform JSON error body with the status mapped from
// err. The message is the client-facing text, not the raw error chain.
func writeError(w http.ResponseWriter, message string, err error) {
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, statusFromError(err))
}
