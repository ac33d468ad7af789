package http

import (
	"errors"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/bid"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps application and domain errors onto HTTP statuses.
// Conflict-class outcomes (lost races, illegal transitions, duplicates) map
// to 409 so clients can distinguish "retry or refresh" from caller mistakes.
func writeError(ctx echo.Context, err error) error {
	return ctx.JSON(statusFor(err), Error{
		Code:    statusFor(err),
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, commands.ErrWrongParty),
		errors.Is(err, commands.ErrNotAPartyToOrder):
		return http.StatusForbidden

	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderIsNotEditable),
		errors.Is(err, bid.ErrOrderNotBiddable),
		errors.Is(err, bid.ErrDuplicateBid),
		errors.Is(err, commands.ErrBidNoLongerAvailable),
		errors.Is(err, commands.ErrOrderNotCompleted),
		errors.Is(err, assignment.ErrAlreadyRated):
		return http.StatusConflict

	case errors.Is(err, bid.ErrVehicleOwnershipMismatch),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest

	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
