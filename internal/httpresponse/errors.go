package httpresponse

import (
	"errors"
	"net/http"

	errs "desdemona/internal/errors"
)

var clientErrors = []error{
	errs.ErrParse,
	errs.ErrInvalidArgument,
	errs.ErrIllegalAction,
	errs.ErrNotYourTurn,
	errs.ErrGameOver,
	errs.ErrIntelligenceRange,
}

// StatusFromError maps a domain error to the HTTP status it is reported with.
func StatusFromError(err error) int {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
