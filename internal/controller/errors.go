package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

var errBadBody = errors.New("malformed request body")

// errorResponse maps err to an HTTP status and the error body clients see. Internal failures are
// reported without detail.
func errorResponse(err error) (int, ws.ErrorPayload) {
	body := ws.ErrorPayload{Error: err.Error()}
	switch {
	case errors.Is(err, engine.ErrMoveRejected):
		if reason, ok := engine.ReasonOf(err); ok {
			body.Reason = reason.String()
		}
		return fiber.StatusUnprocessableEntity, body
	case errors.Is(err, engine.ErrInvalidCoordinate),
		errors.Is(err, engine.ErrInvalidPromotion),
		errors.Is(err, errBadBody):
		return fiber.StatusBadRequest, body
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound, body
	case errors.Is(err, model.ErrNotAPlayer), errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden, body
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict, body
	default:
		return fiber.StatusInternalServerError, ws.ErrorPayload{Error: "internal error"}
	}
}
