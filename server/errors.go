package server

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/prompt"
	"github.com/moogar0880/problems"
)

var (
	errBadRequest           = errors.New("server: bad request")
	errConfirmationRequired = errors.New("server: deletion must be confirmed with confirm=true")
)

func problem(c fiber.Ctx, status int, typ string, detail string) error {
	p := problems.NewStatusProblem(status).
		WithInstance(c.Path()).
		WithType(typ).
		WithDetail(detail)

	return c.Status(status).JSON(p)
}

// handleError maps flow errors to problem documents.
func (s *Server) handleError(c fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, ErrFlowNotFound):
		return problem(c, fiber.StatusNotFound, "flow_not_found", "flow not found")

	case errors.Is(err, flow.ErrUnknownNode):
		return problem(c, fiber.StatusNotFound, "node_not_found", err.Error())

	case errors.Is(err, flow.ErrUnknownEdge):
		return problem(c, fiber.StatusNotFound, "edge_not_found", err.Error())

	case errors.Is(err, flow.ErrProtectedNode):
		return problem(c, fiber.StatusConflict, "protected_node", err.Error())

	case errors.Is(err, flow.ErrFlowClosed):
		return problem(c, fiber.StatusConflict, "flow_closed", err.Error())

	case errors.Is(err, flow.ErrDuplicateID), errors.Is(err, flow.ErrDuplicateEdge):
		return problem(c, fiber.StatusConflict, "conflict", err.Error())

	case errors.Is(err, errConfirmationRequired):
		return problem(c, fiber.StatusPreconditionRequired, "confirmation_required", err.Error())

	case errors.Is(err, flow.ErrUnknownAction),
		errors.Is(err, prompt.ErrInvalidInput),
		errors.Is(err, errBadRequest),
		errors.As(err, &verrs):
		return problem(c, fiber.StatusBadRequest, "validation_error", err.Error())

	default:
		s.logger.Error("request failed", "path", c.Path(), "error", err)

		p := problems.NewStatusProblem(fiber.StatusInternalServerError).
			WithInstance(c.Path()).
			WithType("internal_error").
			WithError(err)

		return c.Status(fiber.StatusInternalServerError).JSON(p)
	}
}
