package http

import (
	"errors"
	"net/http"

	"mediquick/internal/core/application/usecases/commands"
	"mediquick/internal/core/domain/model/inventory"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps domain errors onto HTTP status codes:
// missing aggregates are 404, business conflicts are 409, bad input is 400,
// anything else is a 500 with the detail kept out of the response.
func respondError(ctx echo.Context, err error) error {
	code := statusCodeOf(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func statusCodeOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, commands.ErrAgentAlreadyAssigned):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
