package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

// respondError answers with the status that matches the error kind. Errors
// that are not a *services.Error are reported as internal errors without
// detail.
func respondError(c *fiber.Ctx, err error) error {
	var e *services.Error
	if !errors.As(err, &e) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(statusForKind(e.Kind)).JSON(fiber.Map{
		"error": e.Message,
	})
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation, services.KindStateConflict:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict:
		return fiber.StatusConflict
	case services.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// recordError converts a repository error into the service taxonomy.
func recordError(op, notFound string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return services.NotFoundError(op, notFound, err)
	case errors.Is(err, repositories.ErrInUse):
		return services.ConflictError(op, "Record is used by an interview session", err)
	default:
		return services.ServiceError(op, "Database error", err)
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

// paramID parses a uuid path parameter. Malformed ids are reported as not
// found, the same as ids that do not exist.
func paramID(c *fiber.Ctx, name, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, services.NotFoundError("parse_id", notFound, err)
	}
	return id, nil
}
